package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/shdc/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want app.Config
	}{
		{
			name: "defaults",
			args: nil,
			want: app.Config{Workers: 1, LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "positional manifest",
			args: []string{"shaders/build.hcl"},
			want: app.Config{ManifestPath: "shaders/build.hcl", Workers: 1, LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "manifest flag wins over shorthand",
			args: []string{"-manifest", "a.hcl", "-m", "b.hcl"},
			want: app.Config{ManifestPath: "a.hcl", Workers: 1, LogFormat: "text", LogLevel: "info"},
		},
		{
			name: "all options",
			args: []string{
				"-m", "build.toml", "-compiler", "glslc -O", "-workers", "8", "-dry-run",
				"-report", "out/report.yaml", "-log-format", "JSON", "-log-level", "Debug",
			},
			want: app.Config{
				ManifestPath: "build.toml",
				Compiler:     "glslc -O",
				Workers:      8,
				DryRun:       true,
				ReportPath:   "out/report.yaml",
				LogFormat:    "json",
				LogLevel:     "debug",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, shouldExit)
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-dry-run")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "unknown flag", args: []string{"-retries", "3"}, contains: "flag provided but not defined"},
		{name: "bad workers", args: []string{"-workers", "0"}, contains: "workers must be at least 1"},
		{name: "bad log format", args: []string{"-log-format", "xml"}, contains: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "trace"}, contains: "invalid log-level"},
		{name: "two manifests", args: []string{"a.hcl", "b.hcl"}, contains: "expected at most one manifest"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.contains)
		})
	}
}
