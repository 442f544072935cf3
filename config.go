package procsim

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/procsim/internal/logging"
	"github.com/viant/procsim/policy"
	"github.com/viant/procsim/runtime/scheduler"
	"github.com/viant/procsim/service/generator"
	"github.com/viant/procsim/service/meta"
	"github.com/viant/procsim/service/simulator"
	"github.com/viant/procsim/tracing"
)

// Config is a serialisable representation of the simulator configuration.
// Fields missing from a loaded document keep their defaults.
type Config struct {
	Scheduler  scheduler.Config `json:"scheduler" yaml:"scheduler"`
	Simulation simulator.Config `json:"simulation" yaml:"simulation"`
	Swap       policy.Swap      `json:"swap" yaml:"swap"`
	Generator  generator.Config `json:"generator" yaml:"generator"`
	Log        logging.Config   `json:"log" yaml:"log"`
	Tracing    tracing.Config   `json:"tracing" yaml:"tracing"`
	Report     ReportConfig     `json:"report" yaml:"report"`
}

// ReportConfig controls where the final result goes
type ReportConfig struct {
	// URL is any afs location; the extension selects yaml or json
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
	// Webhook receives the result as a JSON POST
	Webhook string `json:"webhook,omitempty" yaml:"webhook,omitempty"`
	// JobsURL persists sweep jobs, one JSON document each; in memory when empty
	JobsURL string `json:"jobsUrl,omitempty" yaml:"jobsUrl,omitempty"`
}

// DefaultConfig returns a Config populated with package defaults
func DefaultConfig() *Config {
	return &Config{
		Scheduler:  scheduler.DefaultConfig(),
		Simulation: simulator.DefaultConfig(),
		Swap:       policy.DefaultSwap(),
		Generator:  generator.DefaultConfig(),
		Log:        logging.DefaultConfig(),
		Tracing:    tracing.DefaultConfig(),
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	return errors.Join(
		c.Scheduler.Validate(),
		c.Simulation.Validate(),
		c.Swap.Validate(),
		c.Generator.Validate(),
		c.Log.Validate(),
	)
}

// LoadConfig reads a YAML or JSON config through afs on top of the defaults
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	config := DefaultConfig()
	if err := meta.New(nil, "").Load(ctx, URL, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return config, nil
}
