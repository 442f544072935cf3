package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/procsim/service/dao"
)

// FSStore persists one JSON document per entity under a base location.
// Any afs location works; plain paths are treated as local files.
type FSStore[K comparable, T any] struct {
	basePath    string
	fs          afs.Service
	mu          sync.RWMutex
	keySelector func(*T) K
	less        func(a, b *T) bool
}

var _ dao.Service[string, struct{}] = (*FSStore[string, struct{}])(nil)

// WithOrder sets List ordering
func (s *FSStore[K, T]) WithOrder(less func(a, b *T) bool) *FSStore[K, T] {
	s.less = less
	return s
}

// Save writes the entity document
func (s *FSStore[K, T]) Save(ctx context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	if isZero(key) {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %v: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	filePath := s.entityPath(key)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", filePath, err)
	}
	return nil
}

// Load reads the entity document
func (s *FSStore[K, T]) Load(ctx context.Context, key K) (*T, error) {
	if isZero(key) {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	filePath := s.entityPath(key)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", filePath, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %v", dao.ErrNotFound, key)
	}
	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	var ret T
	if err = json.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", filePath, err)
	}
	return &ret, nil
}

// Delete removes the entity document
func (s *FSStore[K, T]) Delete(ctx context.Context, key K) error {
	if isZero(key) {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	filePath := s.entityPath(key)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", filePath, err)
	}
	if !exists {
		return fmt.Errorf("%w: %v", dao.ErrNotFound, key)
	}
	return s.fs.Delete(ctx, filePath)
}

// List reads every document under the base location
func (s *FSStore[K, T]) List(ctx context.Context, _ ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.fs.List(ctx, s.basePath, option.NewRecursive(false))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.basePath, err)
	}
	var ret []*T
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", object.URL(), err)
		}
		var item T
		if err = json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", object.URL(), err)
		}
		ret = append(ret, &item)
	}
	if s.less != nil {
		sort.Slice(ret, func(i, j int) bool { return s.less(ret[i], ret[j]) })
	}
	return ret, nil
}

func (s *FSStore[K, T]) entityPath(key K) string {
	return url.Join(s.basePath, fmt.Sprintf("%v.json", key))
}

func isZero[K comparable](key K) bool {
	var zero K
	return key == zero
}

// NewFSStore creates the base location when missing
func NewFSStore[K comparable, T any](ctx context.Context, basePath string, keySelector func(*T) K) (*FSStore[K, T], error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	fs := afs.New()
	basePath = url.Normalize(basePath, file.Scheme)
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	return &FSStore[K, T]{basePath: basePath, fs: fs, keySelector: keySelector}, nil
}
