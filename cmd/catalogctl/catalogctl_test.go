package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"bookstore-catalog/internal/domains/loadtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"catalogctl"}, args...))
	return out.String(), err
}

func TestGenerateBooksIsDeterministicForSeed(t *testing.T) {
	first, err := runApp(t, "generate", "books", "--count", "3", "--seed", "42", "--compact")
	require.NoError(t, err)
	second, err := runApp(t, "generate", "books", "--count", "3", "--seed", "42", "--compact")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var books []map[string]any
	require.NoError(t, json.Unmarshal([]byte(first), &books))
	require.Len(t, books, 3)
	for _, b := range books {
		assert.NotEmpty(t, b["title"])
	}
}

func TestGenerateAuthorsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.json")

	_, err := runApp(t, "generate", "authors", "-n", "2", "--seed", "1", "--output", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var authors []map[string]any
	require.NoError(t, json.Unmarshal(raw, &authors))
	assert.Len(t, authors, 2)
	assert.Contains(t, string(raw), "\n  ", "indented by default")
}

func TestGenerateRejectsBadCount(t *testing.T) {
	_, err := runApp(t, "generate", "books", "--count", "0")
	assert.Error(t, err)
}

func TestLoadTestRunUnknownScenario(t *testing.T) {
	_, err := runApp(t, "loadtest", "run", "--scenario", "nope")
	assert.ErrorIs(t, err, loadtest.ErrUnknownScenario)
}

func TestLoadTestScenariosListsBuiltins(t *testing.T) {
	out, err := runApp(t, "loadtest", "scenarios")
	require.NoError(t, err)
	for _, sc := range loadtest.Builtins() {
		assert.Contains(t, out, sc.Name)
	}
}

func TestWriteReport(t *testing.T) {
	res := &loadtest.Result{
		Scenario:   "smoke",
		Requests:   12345,
		Failures:   5,
		FailRate:   5.0 / 12345,
		RPS:        102.5,
		ElapsedMs:  120000,
		Statuses:   map[string]int{"200": 12000, "201": 340, "500": 5},
		Operations: map[loadtest.Operation]int{loadtest.OpList: 6000, loadtest.OpGet: 6345},
		Thresholds: []loadtest.ThresholdResult{{Name: "p95", Limit: 500, Observed: 120, OK: true}},
		Passed:     true,
	}

	var buf bytes.Buffer
	writeReport(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "12,345")
	assert.Contains(t, out, "2m0s")
	assert.Contains(t, out, "list")
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "PASSED")
}
