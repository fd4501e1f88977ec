package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/sink"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzeFile_Success(t *testing.T) {
	path := writeTempJSON(t, `{"name": "John", "age": 30, "age": 31, "tags": ["a", "b"]}`)

	cfg := config.NewConfig()
	cfg.Report.AbsolutePaths = false
	rep := analyzeFile(path, cfg)

	assert.Equal(t, path, rep.Filepath)
	assert.Empty(t, rep.AnalysisError)
	require.NotNil(t, rep.Statistics)
	// The duplicated "age" occupies one slot in the final tree.
	assert.Equal(t, 6, rep.Statistics.TotalValues)
	require.Len(t, rep.DuplicateKeys, 1)
	assert.Equal(t, "root", rep.DuplicateKeys[0].Path)
	assert.Equal(t, "age", rep.DuplicateKeys[0].Key)
}

func TestAnalyzeFile_MalformedJSON(t *testing.T) {
	path := writeTempJSON(t, `{"a":}`)

	rep := analyzeFile(path, config.NewConfig())

	assert.NotEmpty(t, rep.AnalysisError)
	assert.NotEmpty(t, rep.Filepath)
	assert.Nil(t, rep.Statistics)
	assert.Nil(t, rep.Structure)
	assert.Nil(t, rep.MaxDepth)
	assert.Empty(t, rep.DuplicateKeys)
}

func TestAnalyzeFile_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")

	rep := analyzeFile(missing, config.NewConfig())

	assert.Contains(t, rep.AnalysisError, "not found")
	assert.Nil(t, rep.Statistics)
}

func TestRun_WritesReportToFile(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	inPath := writeTempJSON(t, `{"items": [1, 2, 3]}`)
	outPath := filepath.Join(t.TempDir(), "report.json")

	CLI.Path = inPath
	CLI.Output = outPath
	CLI.Pretty = true
	CLI.Text = false
	CLI.Copy = false

	cfg := config.NewConfig()
	cfg.Report.AbsolutePaths = false
	require.NoError(t, run(cfg))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, inPath, decoded["filepath"])
	assert.Equal(t, "object", decoded["root_type"])
	assert.EqualValues(t, 2, decoded["max_depth"])
}

func TestRun_ErrorReportStillSucceeds(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	inPath := writeTempJSON(t, `not json at all`)
	outPath := filepath.Join(t.TempDir(), "report.json")

	CLI.Path = inPath
	CLI.Output = outPath
	CLI.Pretty = false
	CLI.Text = false
	CLI.Copy = false

	// A malformed document is not a pipeline failure; the report carries
	// the error instead.
	require.NoError(t, run(config.NewConfig()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "analysis_error")
	assert.NotContains(t, decoded, "statistics")
}

// parseArgs runs the real kong grammar so applyFlags sees which flags the
// user actually passed.
func parseArgs(t *testing.T, args ...string) *kong.Context {
	t.Helper()
	parser, err := kong.New(&CLI, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(append(args, "in.json"))
	require.NoError(t, err)
	return ctx
}

func TestApplyFlags(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	t.Run("explicit flags override config", func(t *testing.T) {
		ctx := parseArgs(t, "--no-pretty", "--color", "never")
		cfg := config.NewConfig()
		applyFlags(cfg, ctx)
		assert.False(t, cfg.Output.Pretty)
		assert.Equal(t, config.ColorNever, cfg.Output.Color)
	})

	t.Run("untouched flags defer to config", func(t *testing.T) {
		ctx := parseArgs(t)
		cfg := config.NewConfig()
		cfg.Output.Pretty = false
		cfg.Output.Color = config.ColorAlways
		applyFlags(cfg, ctx)
		assert.False(t, cfg.Output.Pretty)
		assert.Equal(t, config.ColorAlways, cfg.Output.Color)
	})

	t.Run("explicit default values still override config", func(t *testing.T) {
		ctx := parseArgs(t, "--pretty", "--color", "auto")
		cfg := config.NewConfig()
		cfg.Output.Pretty = false
		cfg.Output.Color = config.ColorAlways
		applyFlags(cfg, ctx)
		assert.True(t, cfg.Output.Pretty)
		assert.Equal(t, config.ColorAuto, cfg.Output.Color)
	})
}

func TestDestinations(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	CLI.Output = ""
	CLI.Copy = false
	sinks := destinations()
	require.Len(t, sinks, 1)
	_, ok := sinks[0].(*sink.Stdout)
	assert.True(t, ok)

	CLI.Output = "out.json"
	CLI.Copy = true
	sinks = destinations()
	require.Len(t, sinks, 2)
	_, ok = sinks[0].(*sink.File)
	assert.True(t, ok)
	_, ok = sinks[1].(sink.Clipboard)
	assert.True(t, ok)
}
