package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type summary struct {
	RunID     string `json:"runId" yaml:"runId"`
	Completed int    `json:"completed" yaml:"completed"`
}

func TestService_Write(t *testing.T) {
	dir := t.TempDir()
	srv := New(nil)
	expect := summary{RunID: "run-1", Completed: 4}

	testCases := []struct {
		description string
		name        string
		decode      func([]byte, interface{}) error
		file        string
	}{
		{description: "json by extension", name: "out.json", file: "out.json", decode: json.Unmarshal},
		{description: "yaml by extension", name: "out.yml", file: "out.yml", decode: yaml.Unmarshal},
		{description: "yaml by default", name: "out", file: "out.yaml", decode: yaml.Unmarshal},
	}
	for _, tc := range testCases {
		_, err := srv.Write(context.Background(), filepath.Join(dir, tc.name), expect)
		require.NoError(t, err, tc.description)
		data, err := os.ReadFile(filepath.Join(dir, tc.file))
		require.NoError(t, err, tc.description)
		var actual summary
		require.NoError(t, tc.decode(data, &actual), tc.description)
		assert.Equal(t, expect, actual, tc.description)
	}
}

func TestService_WriteEmptyURL(t *testing.T) {
	_, err := New(nil).Write(context.Background(), "", summary{})
	assert.Error(t, err)
}
