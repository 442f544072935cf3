package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/dao"
	"github.com/viant/procsim/service/simulator"
)

// MaxCyclesPerRequest bounds POST /cycles
const MaxCyclesPerRequest = 1000

// Simulator is the subset of the simulator exposed over HTTP
type Simulator interface {
	RunID() string
	Cycle() int
	Snapshot() *scheduler.Snapshot
	Statistics() scheduler.Statistics
	Processes(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Process, error)
	History(ctx context.Context) ([]*simulator.Record, error)
	Step(ctx context.Context) (*simulator.Record, error)
	Suspend(ctx context.Context, id int) error
	Resume(ctx context.Context, id int) error
}

// Handler serves simulator state
type Handler struct {
	simulator Simulator
}

// NewHandler creates a handler
func NewHandler(simulator Simulator) *Handler {
	return &Handler{simulator: simulator}
}

// Health reports liveness and run position
func (h *Handler) Health(c *gin.Context) {
	success(c, map[string]interface{}{
		"status": "up",
		"runId":  h.simulator.RunID(),
		"cycle":  h.simulator.Cycle(),
	})
}

// Snapshot returns every queue
func (h *Handler) Snapshot(c *gin.Context) {
	success(c, h.simulator.Snapshot())
}

// Statistics returns the aggregate metrics
func (h *Handler) Statistics(c *gin.Context) {
	success(c, h.simulator.Statistics())
}

// Processes lists admitted processes, optionally filtered by ?state=
func (h *Handler) Processes(c *gin.Context) {
	var parameters []*dao.Parameter
	if values := c.QueryArray("state"); len(values) > 0 {
		states := make([]string, 0, len(values))
		for _, value := range values {
			state, ok := process.ParseState(strings.ToUpper(value))
			if !ok {
				failure(c, CodeValidation, fmt.Sprintf("unknown state: %s", value))
				return
			}
			states = append(states, string(state))
		}
		parameters = append(parameters, dao.NewParameter(dao.StateParameter, states...))
	}
	processes, err := h.simulator.Processes(c.Request.Context(), parameters...)
	if err != nil {
		failure(c, CodeError, err.Error())
		return
	}
	success(c, processes)
}

// History returns per cycle records
func (h *Handler) History(c *gin.Context) {
	history, err := h.simulator.History(c.Request.Context())
	if err != nil {
		failure(c, CodeError, err.Error())
		return
	}
	success(c, history)
}

// Cycles advances the simulation by ?count= cycles, 1 by default
func (h *Handler) Cycles(c *gin.Context) {
	count := 1
	if value := c.Query("count"); value != "" {
		var err error
		if count, err = strconv.Atoi(value); err != nil || count <= 0 || count > MaxCyclesPerRequest {
			failure(c, CodeValidation, fmt.Sprintf("count must be within [1,%d]", MaxCyclesPerRequest))
			return
		}
	}
	records := make([]*simulator.Record, 0, count)
	for i := 0; i < count; i++ {
		record, err := h.simulator.Step(c.Request.Context())
		if err != nil {
			failure(c, CodeError, err.Error())
			return
		}
		records = append(records, record)
	}
	success(c, records)
}

// Suspend swaps a process out
func (h *Handler) Suspend(c *gin.Context) {
	h.swap(c, h.simulator.Suspend)
}

// Resume swaps a process back in
func (h *Handler) Resume(c *gin.Context) {
	h.swap(c, h.simulator.Resume)
}

func (h *Handler) swap(c *gin.Context, fn func(ctx context.Context, id int) error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		failure(c, CodeValidation, fmt.Sprintf("invalid process id: %s", c.Param("id")))
		return
	}
	err = fn(c.Request.Context(), id)
	switch {
	case err == nil:
		success(c, map[string]int{"id": id})
	case errors.Is(err, scheduler.ErrUnknownProcess):
		failure(c, CodeNotFound, err.Error())
	case errors.Is(err, scheduler.ErrInvalidTransition):
		failure(c, CodeConflict, err.Error())
	default:
		failure(c, CodeError, err.Error())
	}
}
