package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jh125486/serverversion/pkg/cli"
)

func TestBuildInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build cli.BuildInfo
		want  string
	}{
		{name: "full", build: cli.BuildInfo{Version: "v1.2.3", Commit: "abc1234", Date: "2024-01-01"}, want: "v1.2.3 (abc1234, 2024-01-01)"},
		{name: "no_date", build: cli.BuildInfo{Version: "v1.2.3", Commit: "abc1234"}, want: "v1.2.3 (abc1234)"},
		{name: "version_only", build: cli.BuildInfo{Version: "dev"}, want: "dev"},
		{name: "date_without_commit", build: cli.BuildInfo{Version: "dev", Date: "2024-01-01"}, want: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.build.String())
		})
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		writer  *bytes.Buffer
		appName string
		build   cli.BuildInfo
		want    string
	}{
		{
			name:    "writes_version",
			writer:  &bytes.Buffer{},
			appName: "serverversion",
			build:   cli.BuildInfo{Version: "v1.2.3"},
			want:    "serverversion v1.2.3\n",
		},
		{
			name:    "writes_commit",
			writer:  &bytes.Buffer{},
			appName: "serverversion",
			build:   cli.BuildInfo{Version: "v1.2.3", Commit: "abc1234"},
			want:    "serverversion v1.2.3 (abc1234)\n",
		},
		{
			name:    "writes_empty_version",
			writer:  &bytes.Buffer{},
			appName: "serverversion",
			want:    "serverversion \n",
		},
		{
			name:    "nil_writer_no_output",
			writer:  nil,
			appName: "serverversion",
			build:   cli.BuildInfo{Version: "v1.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.NotPanics(t, func() {
				cli.PrintVersion(tt.writer, tt.appName, tt.build)
			})

			if tt.writer != nil {
				assert.Equal(t, tt.want, tt.writer.String())
			}
		})
	}
}
