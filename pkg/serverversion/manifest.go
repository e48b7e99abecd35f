package serverversion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// VersionLookup returns the version of the running build.
type VersionLookup interface {
	LookupVersion(ctx context.Context) (string, error)
}

// VersionLookupFunc adapts a function to VersionLookup.
type VersionLookupFunc func(ctx context.Context) (string, error)

func (f VersionLookupFunc) LookupVersion(ctx context.Context) (string, error) {
	return f(ctx)
}

// Manifest reads the version field of a project manifest.
// The format follows the file extension: .yaml and .yml are YAML, anything else is JSON.
type Manifest struct {
	FS   billy.Filesystem
	Path string
}

// NewManifest returns a Manifest reading path relative to dir.
func NewManifest(dir, path string) *Manifest {
	if path == "" {
		path = DefaultManifestPath
	}
	return &Manifest{FS: osfs.New(dir), Path: path}
}

type manifestDoc struct {
	Version scalar `json:"version" yaml:"version"`
}

// scalar decodes any scalar value as its literal text, so `"version": 1` reads as "1".
// Null leaves it empty; arrays and objects are rejected.
type scalar string

func (s *scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = scalar(v)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("version must be a scalar, got %s", data)
	default:
		*s = scalar(data)
	}
	return nil
}

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: version must be a scalar", node.Line)
	}
	if node.Tag == "!!null" {
		*s = ""
		return nil
	}
	*s = scalar(node.Value)
	return nil
}

// LookupVersion reads and decodes the manifest and returns its version.
func (m *Manifest) LookupVersion(_ context.Context) (string, error) {
	data, err := util.ReadFile(m.FS, m.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %q: %w", m.Path, err)
	}

	var doc manifestDoc
	switch strings.ToLower(filepath.Ext(m.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return "", fmt.Errorf("failed to parse manifest %q: %w", m.Path, err)
	}

	if doc.Version == "" {
		return "", fmt.Errorf("%q: %w", m.Path, ErrNoVersion)
	}
	return string(doc.Version), nil
}
