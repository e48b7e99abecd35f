package serverversion_test

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

const packageJSON = `{"name":"demo","version":"1.2.3","private":true}`

// writeFile creates name on fs with content.
func writeFile(t *testing.T, fs billy.Filesystem, name, content string) {
	t.Helper()
	if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// setupGitRepoWithCommit creates an in-memory repo holding package.json in one commit
// and returns the filesystem with the full HEAD hash.
func setupGitRepoWithCommit(t *testing.T) (billy.Filesystem, string) {
	t.Helper()
	fs := memfs.New()
	dot, err := fs.Chroot(".git")
	if err != nil {
		t.Fatalf("chroot: %v", err)
	}
	st := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())
	repo, err := git.Init(st, fs)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	writeFile(t, fs, "package.json", packageJSON)
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("package.json"); err != nil {
		t.Fatalf("add: %v", err)
	}
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "t", Email: "t@e.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return fs, hash.String()
}

// setupEmptyGitRepo creates a git repo without commits
func setupEmptyGitRepo(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	dot, err := fs.Chroot(".git")
	if err != nil {
		t.Fatalf("chroot: %v", err)
	}
	st := filesystem.NewStorage(dot, cache.NewObjectLRUDefault())
	if _, err := git.Init(st, fs); err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return fs
}
