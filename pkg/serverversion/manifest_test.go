package serverversion_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jh125486/serverversion/pkg/serverversion"
)

func TestManifestLookupVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		content     string
		skipWrite   bool
		want        string
		wantErrIs   error
		errContains string
	}{
		{
			name:    "package_json",
			path:    "package.json",
			content: packageJSON,
			want:    "1.2.3",
		},
		{
			name:    "prerelease_version",
			path:    "package.json",
			content: `{"version":"2.0.0-rc.1+build.5"}`,
			want:    "2.0.0-rc.1+build.5",
		},
		{
			name:    "yaml_manifest",
			path:    "Chart.yaml",
			content: "apiVersion: v2\nname: demo\nversion: \"0.4.1\"\n",
			want:    "0.4.1",
		},
		{
			name:    "yml_manifest_unquoted",
			path:    "deploy/app.yml",
			content: "version: 3.1.4\n",
			want:    "3.1.4",
		},
		{
			name:    "unknown_extension_parsed_as_json",
			path:    "VERSION.manifest",
			content: `{"version":"9.9.9"}`,
			want:    "9.9.9",
		},
		{
			name:        "missing_file",
			path:        "package.json",
			skipWrite:   true,
			wantErrIs:   fs.ErrNotExist,
			errContains: "failed to read manifest",
		},
		{
			name:        "malformed_json",
			path:        "package.json",
			content:     `{"version":`,
			errContains: "failed to parse manifest",
		},
		{
			name:        "malformed_yaml",
			path:        "Chart.yaml",
			content:     "version: [unterminated\n",
			errContains: "failed to parse manifest",
		},
		{
			name:      "missing_version_field",
			path:      "package.json",
			content:   `{"name":"demo"}`,
			wantErrIs: serverversion.ErrNoVersion,
		},
		{
			name:      "empty_version_field",
			path:      "package.json",
			content:   `{"version":""}`,
			wantErrIs: serverversion.ErrNoVersion,
		},
		{
			name:    "numeric_json_version",
			path:    "package.json",
			content: `{"version":1}`,
			want:    "1",
		},
		{
			name:    "numeric_json_version_keeps_literal",
			path:    "package.json",
			content: `{"version": 1.10}`,
			want:    "1.10",
		},
		{
			name:    "numeric_yaml_version_keeps_literal",
			path:    "Chart.yaml",
			content: "version: 1.10\n",
			want:    "1.10",
		},
		{
			name:      "null_version",
			path:      "package.json",
			content:   `{"version":null}`,
			wantErrIs: serverversion.ErrNoVersion,
		},
		{
			name:        "array_json_version",
			path:        "package.json",
			content:     `{"version":[1,2]}`,
			errContains: "failed to parse manifest",
		},
		{
			name:        "mapping_yaml_version",
			path:        "Chart.yaml",
			content:     "version:\n  major: 1\n",
			errContains: "failed to parse manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mfs := memfs.New()
			if !tt.skipWrite {
				writeFile(t, mfs, tt.path, tt.content)
			}

			got, err := (&serverversion.Manifest{FS: mfs, Path: tt.path}).LookupVersion(t.Context())

			if tt.wantErrIs != nil || tt.errContains != "" {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs), "error %v should wrap %v", err, tt.wantErrIs)
				}
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(packageJSON), 0o644))

	got, err := serverversion.NewManifest(dir, "").LookupVersion(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}
