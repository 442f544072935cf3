package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithoutCancel(t *testing.T) {
	boom := errors.New("boom")
	testCases := []struct {
		description string
		input       error
		expect      error
	}{
		{description: "plain cancel", input: context.Canceled},
		{description: "joined cancel only", input: errors.Join(context.Canceled, nil)},
		{description: "joined with export error", input: errors.Join(context.Canceled, boom), expect: boom},
		{description: "other error", input: boom, expect: boom},
	}
	for _, tc := range testCases {
		actual := withoutCancel(tc.input)
		if tc.expect == nil {
			assert.NoError(t, actual, tc.description)
			continue
		}
		assert.ErrorIs(t, actual, tc.expect, tc.description)
	}
}

func TestRun(t *testing.T) {
	reportURL := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, run([]string{"-cycles", "5", "-processes", "3", "-seed", "1", "-quiet", "-report", reportURL}, io.Discard))
	assert.FileExists(t, reportURL)
	assert.Error(t, run([]string{"-quantum", "-1"}, io.Discard))
}

func TestRun_QuietPrintsProgress(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, run([]string{"-cycles", "4", "-processes", "2", "-seed", "7", "-quiet"}, out))
	text := out.String()
	assert.Contains(t, text, "[ 25%] cycle 1/4")
	assert.Contains(t, text, "[100%] cycle 4/4")
	assert.NotContains(t, text, "STATE")
}

func TestRunSweep(t *testing.T) {
	assert.NoError(t, run([]string{"-sweep", "1, 3", "-runs", "2", "-cycles", "10", "-workers", "2"}, io.Discard))
	assert.Error(t, run([]string{"-sweep", "one"}, io.Discard))
	assert.Error(t, run([]string{"-sweep", "2", "-runs", "0"}, io.Discard))
}

func TestParseInts(t *testing.T) {
	values, err := parseInts("1,2, 4,")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, values)
	_, err = parseInts(",")
	assert.Error(t, err)
}
