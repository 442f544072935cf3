package simulator

import (
	"errors"
	"fmt"
)

// Config controls the driving loop
type Config struct {
	// Cycles is the number of scheduler cycles Run executes
	Cycles int `json:"cycles" yaml:"cycles"`
	// Processes is how many processes are generated up front
	Processes int `json:"processes" yaml:"processes"`
	// Seed for the random source; 0 seeds from the wall clock
	Seed int64 `json:"seed" yaml:"seed"`
	// AdmissionProbability is the per cycle chance the next pending process is admitted
	AdmissionProbability float64 `json:"admissionProbability" yaml:"admissionProbability"`
	// DelayMs pauses between cycles, for watching a run live
	DelayMs int `json:"delayMs,omitempty" yaml:"delayMs,omitempty"`
}

// DefaultConfig returns the default loop configuration
func DefaultConfig() Config {
	return Config{
		Cycles:               100,
		Processes:            15,
		AdmissionProbability: 0.3,
	}
}

// Validate checks loop settings
func (c Config) Validate() error {
	var errs []error
	if c.Cycles < 0 {
		errs = append(errs, fmt.Errorf("simulation.cycles must be >= 0"))
	}
	if c.Processes < 0 {
		errs = append(errs, fmt.Errorf("simulation.processes must be >= 0"))
	}
	if c.AdmissionProbability < 0 || c.AdmissionProbability > 1 {
		errs = append(errs, fmt.Errorf("simulation.admissionProbability must be within [0,1]"))
	}
	if c.DelayMs < 0 {
		errs = append(errs, fmt.Errorf("simulation.delayMs must be >= 0"))
	}
	return errors.Join(errs...)
}
