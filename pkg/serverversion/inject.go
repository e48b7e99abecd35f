package serverversion

import (
	"context"
	"net/http"
	"strings"

	"github.com/jh125486/serverversion/pkg/middleware"
)

// Injector writes resolved metadata into every response it wraps.
// It is immutable after New and safe for concurrent use.
type Injector struct {
	cfg Config
	md  Metadata
}

// New resolves metadata once and returns an Injector serving it.
// An error is returned only when cfg.ThrowOnErrors is set and a lookup fails.
func New(ctx context.Context, cfg Config, src *Sources) (*Injector, error) {
	cfg = cfg.withDefaults()
	md, err := Resolve(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	return &Injector{cfg: cfg, md: md}, nil
}

// Metadata returns the values resolved by New.
func (i *Injector) Metadata() Metadata {
	return i.md
}

// Middleware registers Apply to run just before each response is sent.
func (i *Injector) Middleware(next http.Handler) http.Handler {
	return middleware.BeforeSend(i.Apply)(next)
}

// Apply sets the configured headers on h.
func (i *Injector) Apply(h http.Header) {
	exposed := make([]string, 0, 2)
	if i.cfg.ExposeLastCommit && i.md.CommitHash != "" {
		h.Set(i.cfg.CommitHeaderName, i.md.CommitHash)
		exposed = append(exposed, i.cfg.CommitHeaderName)
	}
	if i.cfg.ExposeVersion && i.md.Version != "" {
		h.Set(i.cfg.VersionHeaderName, i.md.Version)
		exposed = append(exposed, i.cfg.VersionHeaderName)
	}

	if !i.cfg.AddAccessControlExposeHeaders || len(exposed) == 0 {
		return
	}
	merged := MergeExposeHeaders(h.Values(AccessControlExposeHeaders), exposed...)
	h.Set(AccessControlExposeHeaders, strings.Join(merged, ", "))
}

// MergeExposeHeaders splits the comma-separated existing values and appends every name
// not already listed. Names compare case-insensitively; existing entries keep their order.
func MergeExposeHeaders(existing []string, names ...string) []string {
	merged := make([]string, 0, len(existing)+len(names))
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		for _, m := range merged {
			if strings.EqualFold(m, name) {
				return
			}
		}
		merged = append(merged, name)
	}

	for _, value := range existing {
		for name := range strings.SplitSeq(value, ",") {
			add(name)
		}
	}
	for _, name := range names {
		add(name)
	}
	return merged
}
