package simulator

import (
	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/policy"
	"github.com/viant/procsim/runtime/scheduler"
)

// Record captures the system state right after a cycle's Advance, together
// with the swap directives applied afterwards.
type Record struct {
	Cycle      int                   `json:"cycle" yaml:"cycle"`
	Time       int                   `json:"time" yaml:"time"`
	Admitted   int                   `json:"admitted,omitempty" yaml:"admitted,omitempty"`
	Running    int                   `json:"running,omitempty" yaml:"running,omitempty"`
	Counts     map[process.State]int `json:"counts" yaml:"counts"`
	Statistics scheduler.Statistics  `json:"statistics" yaml:"statistics"`
	Directives []policy.Directive    `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// Result summarises a run
type Result struct {
	RunID      string               `json:"runId" yaml:"runId"`
	Cycles     int                  `json:"cycles" yaml:"cycles"`
	Statistics scheduler.Statistics `json:"statistics" yaml:"statistics"`
	Terminated int                  `json:"terminated" yaml:"terminated"`
	// Pending counts READY, WAITING and both suspended queues
	Pending int `json:"pending" yaml:"pending"`
	// Unadmitted counts generated processes never handed to the scheduler
	Unadmitted int       `json:"unadmitted" yaml:"unadmitted"`
	History    []*Record `json:"history,omitempty" yaml:"history,omitempty"`
}
