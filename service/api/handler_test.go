package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/simulator"
)

func newRouter(t *testing.T) (*gin.Engine, *simulator.Service) {
	gin.SetMode(gin.TestMode)
	config := simulator.DefaultConfig()
	config.Seed = 42
	srv, err := simulator.New(simulator.WithConfig(config), simulator.WithRunID("run-api"))
	require.NoError(t, err)
	return NewRouter(srv, nil), srv
}

func serve(router http.Handler, method, target string) (*httptest.ResponseRecorder, Response) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	var response Response
	_ = json.Unmarshal(recorder.Body.Bytes(), &response)
	return recorder, response
}

func decode(t *testing.T, data interface{}, target interface{}) {
	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(encoded, target))
}

func TestHandler_Routes(t *testing.T) {
	router, _ := newRouter(t)

	testCases := []struct {
		description string
		method      string
		target      string
		status      int
		code        int
	}{
		{description: "health", method: http.MethodGet, target: "/health", status: 200},
		{description: "snapshot", method: http.MethodGet, target: "/snapshot", status: 200},
		{description: "statistics", method: http.MethodGet, target: "/statistics", status: 200},
		{description: "history", method: http.MethodGet, target: "/history", status: 200},
		{description: "processes", method: http.MethodGet, target: "/processes?state=ready", status: 200},
		{description: "unknown state", method: http.MethodGet, target: "/processes?state=SLEEPING", status: 400, code: CodeValidation},
		{description: "one cycle", method: http.MethodPost, target: "/cycles", status: 200},
		{description: "bad count", method: http.MethodPost, target: "/cycles?count=zero", status: 400, code: CodeValidation},
		{description: "count too large", method: http.MethodPost, target: "/cycles?count=5000", status: 400, code: CodeValidation},
		{description: "bad id", method: http.MethodPost, target: "/processes/abc/suspend", status: 400, code: CodeValidation},
		{description: "unknown process", method: http.MethodPost, target: "/processes/999/resume", status: 404, code: CodeNotFound},
		{description: "wrong method", method: http.MethodGet, target: "/cycles", status: 404},
	}
	for _, tc := range testCases {
		recorder, response := serve(router, tc.method, tc.target)
		assert.Equal(t, tc.status, recorder.Code, tc.description)
		if tc.status != 404 || tc.code != 0 {
			assert.Equal(t, tc.code, response.Code, tc.description)
		}
	}
}

func TestHandler_CyclesAndHistory(t *testing.T) {
	router, srv := newRouter(t)
	recorder, response := serve(router, http.MethodPost, "/cycles?count=30")
	require.Equal(t, 200, recorder.Code)
	var records []*simulator.Record
	decode(t, response.Data, &records)
	require.Len(t, records, 30)
	assert.Equal(t, 30, records[29].Cycle)
	assert.Equal(t, 30, srv.Cycle())

	_, response = serve(router, http.MethodGet, "/history")
	decode(t, response.Data, &records)
	assert.Len(t, records, 30)

	_, response = serve(router, http.MethodGet, "/statistics")
	var stats scheduler.Statistics
	decode(t, response.Data, &stats)
	assert.Equal(t, srv.Statistics(), stats)
}

func TestHandler_SuspendResume(t *testing.T) {
	router, srv := newRouter(t)
	for i := 0; i < 100; i++ {
		serve(router, http.MethodPost, "/cycles")
		snapshot := srv.Snapshot()
		if len(snapshot.Ready) == 0 {
			continue
		}
		id := snapshot.Ready[0].ID
		target := "/processes/" + strconv.Itoa(id)

		recorder, _ := serve(router, http.MethodPost, target+"/suspend")
		assert.Equal(t, 200, recorder.Code)
		recorder, response := serve(router, http.MethodPost, target+"/suspend")
		assert.Equal(t, 409, recorder.Code)
		assert.Equal(t, CodeConflict, response.Code)

		_, response = serve(router, http.MethodGet, "/processes?state=READY_SUSPENDED")
		var suspended []*process.Process
		decode(t, response.Data, &suspended)
		require.NotEmpty(t, suspended)
		for _, p := range suspended {
			assert.Equal(t, process.StateReadySuspended, p.State)
		}

		recorder, _ = serve(router, http.MethodPost, target+"/resume")
		assert.Equal(t, 200, recorder.Code)
		return
	}
	t.Skip("no READY process observed")
}
