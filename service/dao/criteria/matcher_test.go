package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/service/dao"
)

func TestFilterByState(t *testing.T) {
	var testCases = []struct {
		description string
		state       process.State
		parameters  []*dao.Parameter
		expect      bool
	}{
		{description: "no parameters", state: process.StateReady, expect: true},
		{description: "single match", state: process.StateReady, parameters: []*dao.Parameter{dao.NewParameter("State", "READY")}, expect: true},
		{description: "single mismatch", state: process.StateNew, parameters: []*dao.Parameter{dao.NewParameter("State", "READY")}, expect: false},
		{description: "any of", state: process.StateWaiting, parameters: []*dao.Parameter{dao.NewParameter("State", "READY", "WAITING")}, expect: true},
		{description: "none of", state: process.StateTerminated, parameters: []*dao.Parameter{dao.NewParameter("State", "READY", "WAITING")}, expect: false},
		{description: "typed state", state: process.StateRunning, parameters: []*dao.Parameter{{Name: "State", Value: process.StateRunning}}, expect: true},
		{description: "other names ignored", state: process.StateNew, parameters: []*dao.Parameter{dao.NewParameter("Name", "x")}, expect: true},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, FilterByState(testCase.state, testCase.parameters), testCase.description)
	}
}
