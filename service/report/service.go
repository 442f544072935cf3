// Package report persists simulation results through afs.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service writes reports as YAML or JSON depending on the destination extension
type Service struct {
	fs afs.Service
}

// Write encodes report and uploads it to URL. Extensionless URLs get ".yaml".
// It returns the normalised destination.
func (s *Service) Write(ctx context.Context, URL string, report interface{}) (string, error) {
	if URL == "" {
		return "", fmt.Errorf("report URL was empty")
	}
	if path.Ext(URL) == "" {
		URL += ".yaml"
	}
	URL = url.Normalize(URL, file.Scheme)
	data, err := Encode(URL, report)
	if err != nil {
		return "", err
	}
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to upload report to %s: %w", URL, err)
	}
	return URL, nil
}

// Encode marshals report in the format implied by URL.
func Encode(URL string, report interface{}) ([]byte, error) {
	switch strings.ToLower(path.Ext(URL)) {
	case ".json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json report: %w", err)
		}
		return data, nil
	default:
		data, err := yaml.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return data, nil
	}
}

// New creates a report service
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}
