package generator

import (
	"fmt"
	"sync"

	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/runtime/random"
)

// Config defines workload ranges; bounds are inclusive
type Config struct {
	MinExecTime int `json:"minExecTime" yaml:"minExecTime"`
	MaxExecTime int `json:"maxExecTime" yaml:"maxExecTime"`
	MinPriority int `json:"minPriority" yaml:"minPriority"`
	MaxPriority int `json:"maxPriority" yaml:"maxPriority"`
}

// DefaultConfig returns the default workload ranges
func DefaultConfig() Config {
	return Config{
		MinExecTime: 5,
		MaxExecTime: 20,
		MinPriority: 1,
		MaxPriority: 5,
	}
}

// Validate checks range consistency
func (c Config) Validate() error {
	if c.MinExecTime <= 0 {
		return fmt.Errorf("generator.minExecTime must be > 0")
	}
	if c.MaxExecTime < c.MinExecTime {
		return fmt.Errorf("generator.maxExecTime must be >= minExecTime")
	}
	if c.MaxPriority < c.MinPriority {
		return fmt.Errorf("generator.maxPriority must be >= minPriority")
	}
	return nil
}

// Service produces processes with random workload parameters
type Service struct {
	config Config
	random random.Rand
	mu     sync.Mutex
	nextID int
}

// Generate creates count processes with consecutive ids
func (s *Service) Generate(count int) ([]*process.Process, error) {
	ret := make([]*process.Process, 0, count)
	for i := 0; i < count; i++ {
		p, err := s.Next()
		if err != nil {
			return nil, err
		}
		ret = append(ret, p)
	}
	return ret, nil
}

// Next creates a single process
func (s *Service) Next() (*process.Process, error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.mu.Unlock()
	execTime := s.random.IntRange(s.config.MinExecTime, s.config.MaxExecTime)
	priority := s.random.IntRange(s.config.MinPriority, s.config.MaxPriority)
	return process.New(id, fmt.Sprintf("process_%d", id), execTime, priority)
}

// New creates a generator; ids start at 1
func New(source random.Rand, config Config) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{config: config, random: source, nextID: 1}, nil
}
