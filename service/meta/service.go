package meta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for documents that are neither YAML nor JSON
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Service loads configuration documents from any afs supported location.
// ${env.KEY} expressions are expanded before decoding.
type Service struct {
	fs      afs.Service
	baseURL string
}

// Load decodes the document at URL into target. Relative URLs are resolved
// against the service base URL.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	URL = s.resolve(URL)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return s.Decode(URL, data, target)
}

// Decode unmarshals data into target using the format implied by URL's extension.
// Documents without an extension are treated as YAML.
func (s *Service) Decode(URL string, data []byte, target interface{}) error {
	expanded := []byte(expandEnvExpr(string(data)))
	switch ext := strings.ToLower(path.Ext(URL)); ext {
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(expanded, target); err != nil {
			return fmt.Errorf("failed to decode yaml %s: %w", URL, err)
		}
	case ".json":
		if err := json.Unmarshal(expanded, target); err != nil {
			return fmt.Errorf("failed to decode json %s: %w", URL, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Exists reports whether a document is present at URL.
func (s *Service) Exists(ctx context.Context, URL string) (bool, error) {
	return s.fs.Exists(ctx, s.resolve(URL))
}

func (s *Service) resolve(URL string) string {
	if s.baseURL != "" && url.IsRelative(URL) {
		return url.Join(s.baseURL, URL)
	}
	return URL
}

// New creates a meta service. baseURL may be empty.
func New(fs afs.Service, baseURL string) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, baseURL: baseURL}
}
