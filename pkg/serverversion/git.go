package serverversion

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// ShortHashLength is the number of hex characters kept from a HEAD hash.
const ShortHashLength = 7

// CommitLookup returns the commit identifier of the running checkout.
type CommitLookup interface {
	LookupCommit(ctx context.Context) (string, error)
}

// CommitLookupFunc adapts a function to CommitLookup.
type CommitLookupFunc func(ctx context.Context) (string, error)

func (f CommitLookupFunc) LookupCommit(ctx context.Context) (string, error) {
	return f(ctx)
}

// GitRepo reads HEAD from a git repository.
// With FS set the repository is rooted at FS; otherwise Dir is opened from disk.
type GitRepo struct {
	FS  billy.Filesystem
	Dir string
}

// NewGitRepo returns a GitRepo for the repository containing dir.
// Parent directories are searched for .git, which may be a gitdir file as in linked
// worktrees and submodules.
func NewGitRepo(dir string) *GitRepo {
	return &GitRepo{Dir: dir}
}

// LookupCommit opens the repository and returns HEAD shortened to ShortHashLength characters.
func (g *GitRepo) LookupCommit(_ context.Context) (string, error) {
	r, err := g.open()
	if err != nil {
		return "", err
	}
	ref, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	return ref.Hash().String()[:ShortHashLength], nil
}

func (g *GitRepo) open() (*git.Repository, error) {
	if g.FS == nil {
		r, err := git.PlainOpenWithOptions(g.Dir, &git.PlainOpenOptions{
			DetectDotGit:          true,
			EnableDotGitCommonDir: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open git repo %q: %w", g.Dir, err)
		}
		return r, nil
	}

	dot, err := g.FS.Chroot(".git")
	if err != nil {
		return nil, fmt.Errorf("failed to access .git directory: %w", err)
	}
	st := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())
	r, err := git.Open(st, g.FS)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repo: %w", err)
	}
	return r, nil
}
