// Package serverversion stamps HTTP responses with the version and commit of the running build.
package serverversion

import "time"

const (
	// DefaultVersionHeaderName is the response header carrying the server version.
	DefaultVersionHeaderName = "x-server-version"
	// DefaultCommitHeaderName is the response header carrying the commit hash.
	DefaultCommitHeaderName = "x-commit-hash"
	// DefaultCommitEnvVar is the environment variable that overrides the commit hash lookup.
	DefaultCommitEnvVar = "LAST_COMMIT_HASH"
	// DefaultManifestPath is the manifest read for the version when none is configured.
	DefaultManifestPath = "package.json"

	// AccessControlExposeHeaders is the CORS header listing response headers readable by browsers.
	AccessControlExposeHeaders = "Access-Control-Expose-Headers"
)

// Config controls how metadata is resolved and which headers are written.
// Use DefaultConfig to get a Config with every default applied.
type Config struct {
	VersionHeaderName string
	CommitHeaderName  string

	ExposeLastCommit              bool
	ExposeVersion                 bool
	AddAccessControlExposeHeaders bool

	// Explicit values win over every lookup.
	LastCommitHash string
	Version        string

	// ThrowOnErrors makes a failed lookup abort New instead of leaving the value absent.
	ThrowOnErrors bool

	CommitEnvVar string
	ManifestPath string

	// Timeout bounds the whole resolution phase. Zero means no bound.
	Timeout time.Duration
}

// DefaultConfig returns a Config exposing both headers and the CORS expose list.
func DefaultConfig() Config {
	return Config{
		VersionHeaderName:             DefaultVersionHeaderName,
		CommitHeaderName:              DefaultCommitHeaderName,
		ExposeLastCommit:              true,
		ExposeVersion:                 true,
		AddAccessControlExposeHeaders: true,
		CommitEnvVar:                  DefaultCommitEnvVar,
		ManifestPath:                  DefaultManifestPath,
	}
}

// withDefaults fills empty names so a partially built Config still behaves.
func (c Config) withDefaults() Config {
	if c.VersionHeaderName == "" {
		c.VersionHeaderName = DefaultVersionHeaderName
	}
	if c.CommitHeaderName == "" {
		c.CommitHeaderName = DefaultCommitHeaderName
	}
	if c.CommitEnvVar == "" {
		c.CommitEnvVar = DefaultCommitEnvVar
	}
	if c.ManifestPath == "" {
		c.ManifestPath = DefaultManifestPath
	}
	return c
}
