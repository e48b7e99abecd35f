package serverversion

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jh125486/serverversion/pkg/contextlog"
)

// Where a resolved value came from.
const (
	SourceConfig   = "config"
	SourceEnv      = "env"
	SourceGit      = "git"
	SourceManifest = "manifest"
)

type (
	// Metadata holds the resolved values. An empty value is absent and never written.
	Metadata struct {
		CommitHash    string
		Version       string
		CommitSource  string
		VersionSource string
	}

	// Sources are the lookups consulted when Config carries no explicit value.
	// A nil lookup is skipped.
	Sources struct {
		LookupEnv func(key string) (string, bool)
		Commits   CommitLookup
		Versions  VersionLookup
	}
)

// NewSources returns Sources reading the process environment, the git checkout containing dir,
// and the manifest at manifestPath relative to dir.
func NewSources(dir, manifestPath string) *Sources {
	return &Sources{
		LookupEnv: os.LookupEnv,
		Commits:   NewGitRepo(dir),
		Versions:  NewManifest(dir, manifestPath),
	}
}

// Resolve runs the commit and version lookups concurrently.
// With ThrowOnErrors set, the first failed lookup is returned as a *ResolutionError;
// otherwise failures are logged and leave the value empty.
func Resolve(ctx context.Context, cfg Config, src *Sources) (Metadata, error) {
	cfg = cfg.withDefaults()
	if src == nil {
		src = &Sources{}
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var md Metadata
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		md.CommitHash, md.CommitSource, err = resolveCommitHash(gctx, cfg, src)
		return err
	})
	g.Go(func() (err error) {
		md.Version, md.VersionSource, err = resolveVersion(gctx, cfg, src)
		return err
	})
	if err := g.Wait(); err != nil {
		return Metadata{}, err
	}

	contextlog.From(ctx).DebugContext(ctx, "Resolved server metadata",
		slog.String("commit", md.CommitHash),
		slog.String("commit_source", md.CommitSource),
		slog.String("version", md.Version),
		slog.String("version_source", md.VersionSource),
	)
	return md, nil
}

func resolveCommitHash(ctx context.Context, cfg Config, src *Sources) (value, source string, err error) {
	if cfg.LastCommitHash != "" {
		return cfg.LastCommitHash, SourceConfig, nil
	}
	if src.LookupEnv != nil {
		if v, ok := src.LookupEnv(cfg.CommitEnvVar); ok && v != "" {
			return v, SourceEnv, nil
		}
	}
	if src.Commits == nil {
		return "", "", nil
	}

	hash, err := bounded(ctx, src.Commits.LookupCommit)
	if err != nil {
		return "", "", lookupFailed(ctx, cfg, FieldCommit, err)
	}
	return hash, SourceGit, nil
}

func resolveVersion(ctx context.Context, cfg Config, src *Sources) (value, source string, err error) {
	if cfg.Version != "" {
		return cfg.Version, SourceConfig, nil
	}
	if src.Versions == nil {
		return "", "", nil
	}

	version, err := bounded(ctx, src.Versions.LookupVersion)
	if err != nil {
		return "", "", lookupFailed(ctx, cfg, FieldVersion, err)
	}
	return version, SourceManifest, nil
}

// lookupFailed applies the ThrowOnErrors policy to a failed lookup.
func lookupFailed(ctx context.Context, cfg Config, field string, err error) error {
	contextlog.From(ctx).DebugContext(ctx, "Server metadata lookup failed",
		slog.String("field", field),
		slog.Bool("throw_on_errors", cfg.ThrowOnErrors),
		slog.Any("error", err),
	)
	if !cfg.ThrowOnErrors {
		return nil
	}
	return &ResolutionError{Field: field, Err: err}
}

// bounded runs fn but gives up as soon as ctx is done, since git and file reads
// do not observe cancellation themselves.
func bounded(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	type result struct {
		value string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
