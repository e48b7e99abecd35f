package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jh125486/serverversion/pkg/cli"
	"github.com/jh125486/serverversion/pkg/server"
	"github.com/jh125486/serverversion/pkg/serverversion"
)

// Name is the binary name used in usage and version output.
const Name = "serverversion"

type (
	// CLI defines the command-line interface structure for the serverversion application.
	CLI struct {
		cli.BaseCLI `embed:""`

		Serve   ServeCmd   `cmd:"" default:"withargs" help:"Run an HTTP server that stamps every response with build metadata"`
		Resolve ResolveCmd `cmd:"" help:"Resolve build metadata and print it"`
	}

	// MetadataArgs configure how metadata is resolved and exposed.
	//
	//nolint:lll // Long struct tags
	MetadataArgs struct {
		Dir           string        `default:"."                env:"SERVER_VERSION_DIR"      help:"Project directory holding the manifest and git checkout" name:"dir"           type:"existingdir"`
		Manifest      string        `default:"package.json"     env:"SERVER_VERSION_MANIFEST" help:"Manifest path relative to --dir (.json, .yaml or .yml)"  name:"manifest"`
		ServerVersion string        `env:"SERVER_VERSION"       help:"Explicit version, skips the manifest"                    name:"server-version"`
		CommitHash    string        `help:"Explicit commit hash, skips the environment and git"  name:"commit-hash"`
		CommitEnv     string        `default:"LAST_COMMIT_HASH" help:"Environment variable overriding the git commit"        name:"commit-env"`
		VersionHeader string        `default:"x-server-version" help:"Response header carrying the version"                 name:"version-header"`
		CommitHeader  string        `default:"x-commit-hash"    help:"Response header carrying the commit hash"             name:"commit-header"`
		ExposeCommit  bool          `default:"true"             help:"Write the commit header"                              name:"expose-commit"  negatable:""`
		ExposeVersion bool          `default:"true"             help:"Write the version header"                             name:"expose-version" negatable:""`
		ExposeCORS    bool          `default:"true"             help:"List written headers in Access-Control-Expose-Headers" name:"expose-cors"    negatable:""`
		ThrowOnErrors bool          `help:"Fail instead of omitting a header when a lookup fails" name:"throw-on-errors"`
		Timeout       time.Duration `default:"10s"              help:"Bound on metadata resolution (0 disables)"            name:"timeout"`
	}

	// ServeCmd runs the example HTTP server.
	ServeCmd struct {
		MetadataArgs `embed:""`
		Port         string `default:"8080" env:"PORT" help:"Port to listen on" name:"port"`
	}

	// ResolveCmd prints the resolved metadata.
	ResolveCmd struct {
		MetadataArgs `embed:""`

		Out io.Writer `kong:"-"`
	}
)

// Config maps the flags onto a serverversion.Config.
func (a *MetadataArgs) Config() serverversion.Config {
	cfg := serverversion.DefaultConfig()
	cfg.VersionHeaderName = a.VersionHeader
	cfg.CommitHeaderName = a.CommitHeader
	cfg.ExposeLastCommit = a.ExposeCommit
	cfg.ExposeVersion = a.ExposeVersion
	cfg.AddAccessControlExposeHeaders = a.ExposeCORS
	cfg.LastCommitHash = a.CommitHash
	cfg.Version = a.ServerVersion
	cfg.ThrowOnErrors = a.ThrowOnErrors
	cfg.CommitEnvVar = a.CommitEnv
	cfg.ManifestPath = a.Manifest
	cfg.Timeout = a.Timeout
	return cfg
}

// Sources returns the production lookups rooted at --dir.
func (a *MetadataArgs) Sources() *serverversion.Sources {
	return serverversion.NewSources(a.Dir, a.Manifest)
}

// Run executes the serve command.
func (cmd *ServeCmd) Run(ctx cli.Context) error {
	inj, err := serverversion.New(ctx, cmd.Config(), cmd.Sources())
	if err != nil {
		return err
	}

	return server.Start(ctx, server.Config{
		Port:     cmd.Port,
		Injector: inj,
	})
}

// Run executes the resolve command.
func (cmd *ResolveCmd) Run(ctx cli.Context, build cli.BuildInfo) error {
	md, err := serverversion.Resolve(ctx, cmd.Config(), cmd.Sources())
	if err != nil {
		return fmt.Errorf("failed to resolve metadata: %w", err)
	}

	out := cmd.Out
	if out == nil {
		out = os.Stdout
	}
	cli.PrintVersion(out, Name, build)
	if err := md.Render(out); err != nil {
		return fmt.Errorf("failed to print metadata: %w", err)
	}
	return nil
}
