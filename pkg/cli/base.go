package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/jh125486/serverversion/pkg/contextlog"
)

// BaseCLI defines the core fields for all CLIs using our framework.
type BaseCLI struct {
	Version   kong.VersionFlag `help:"Show version and exit"      name:"version"`
	LogLevel  string           `default:"info"                    env:"LOG_LEVEL"  help:"Log level (debug, info, warn, error)" name:"log-level"`
	LogFormat string           `default:"text"                    enum:"text,json" env:"LOG_FORMAT"                            help:"Log format" name:"log-format"`
}

// WithLogger installs the configured logger, tagged with the build, into ctx.
func (b *BaseCLI) WithLogger(ctx context.Context, build BuildInfo) context.Context {
	return contextlog.New(ctx, nil, b.LogLevel, b.LogFormat,
		slog.String("version", build.Version),
		slog.String("commit", build.Commit),
	)
}
