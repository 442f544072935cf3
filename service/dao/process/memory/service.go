package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/procsim/model/process"
	"github.com/viant/procsim/service/dao"
	"github.com/viant/procsim/service/dao/criteria"
)

// Service is an in-memory registry of every generated process, admitted or
// still pending.  It stores the live instances; callers needing isolation
// must clone what they read.
type Service struct {
	processes map[int]*process.Process
	mux       sync.RWMutex
}

var _ dao.Service[int, process.Process] = (*Service)(nil)

// Save registers a process
func (s *Service) Save(_ context.Context, p *process.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.ID <= 0 {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.processes[p.ID] = p
	return nil
}

// Load returns a process by id
func (s *Service) Load(_ context.Context, id int) (*process.Process, error) {
	if id <= 0 {
		return nil, dao.ErrInvalidID
	}
	s.mux.RLock()
	p, ok := s.processes[id]
	s.mux.RUnlock()
	if !ok {
		return nil, dao.ErrNotFound
	}
	return p, nil
}

// Delete removes a process
func (s *Service) Delete(_ context.Context, id int) error {
	if id <= 0 {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.processes[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.processes, id)
	return nil
}

// List returns processes ordered by id, filtered by State parameters
func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*process.Process, error) {
	s.mux.RLock()
	out := make([]*process.Process, 0, len(s.processes))
	for _, p := range s.processes {
		if !criteria.FilterByState(p.State, parameters) {
			continue
		}
		out = append(out, p)
	}
	s.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// New creates a registry
func New() *Service {
	return &Service{processes: map[int]*process.Process{}}
}
