package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope
type Response struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
	Msg  string      `json:"message"`
}

// Business codes carried in Response.Code
const (
	CodeSuccess    = 0
	CodeError      = -1
	CodeNotFound   = 40400
	CodeValidation = 40001
	CodeConflict   = 40900
)

var codeMessages = map[int]string{
	CodeSuccess:    "ok",
	CodeError:      "failed",
	CodeNotFound:   "not found",
	CodeValidation: "invalid request",
	CodeConflict:   "conflict",
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeSuccess, Data: data, Msg: codeMessages[CodeSuccess]})
}

func failure(c *gin.Context, code int, msg string) {
	if msg == "" {
		msg = codeMessages[code]
	}
	c.JSON(httpStatus(code), Response{Code: code, Msg: msg})
}

func httpStatus(code int) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
