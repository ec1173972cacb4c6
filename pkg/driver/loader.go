package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Source is a loaded script ready to scan.
type Source struct {
	// Name is the target name or file path the user asked for.
	Name string
	// Origin identifies exactly what was read: an absolute path, or
	// git+<url>@<commit>:<main> for repository targets.
	Origin string
	Text   string
}

// Loader reads scripts from the local filesystem or from git repositories.
type Loader struct {
	fs billy.Filesystem
}

// NewLoader creates a loader reading local files through fs. A nil fs uses
// the host filesystem.
func NewLoader(fs billy.Filesystem) *Loader {
	if fs == nil {
		fs = osfs.New("/")
	}
	return &Loader{fs: fs}
}

// LoadFile reads a script from the local filesystem.
func (l *Loader) LoadFile(name string) (*Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("loader: empty path")
	}
	absPath, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", name, err)
	}
	file, err := l.fs.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", absPath, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", absPath, err)
	}
	return &Source{Name: name, Origin: absPath, Text: string(data)}, nil
}

// LoadTarget reads the main script of a manifest target.
func (l *Loader) LoadTarget(ctx context.Context, manifest *Manifest, target *TargetSpec) (*Source, error) {
	if target == nil {
		return nil, fmt.Errorf("loader: nil target")
	}
	if target.IsGit() {
		src, err := l.loadGitTarget(ctx, manifest, target)
		if err != nil {
			return nil, fmt.Errorf("loader: target %q: %w", target.Name, err)
		}
		return src, nil
	}
	mainPath := target.Main
	if !filepath.IsAbs(mainPath) && manifest != nil {
		mainPath = filepath.Join(manifest.Dir(), mainPath)
	}
	src, err := l.LoadFile(mainPath)
	if err != nil {
		return nil, err
	}
	src.Name = target.Name
	return src, nil
}

func (l *Loader) loadGitTarget(ctx context.Context, manifest *Manifest, target *TargetSpec) (*Source, error) {
	url := target.Git
	repo, err := openRepository(ctx, manifest, url)
	if err != nil {
		return nil, err
	}
	revision, remoteBranch := gitRevisionFromSpec(target)
	hash, err := repo.ResolveRevision(revision)
	if err != nil && remoteBranch != "" {
		// Local repositories have the branch under refs/heads.
		hash, err = repo.ResolveRevision(plumbing.Revision(plumbing.NewBranchReferenceName(remoteBranch)))
	}
	if err != nil {
		return nil, fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", hash, err)
	}
	text, err := readCommitFile(commit, target.Main)
	if err != nil {
		return nil, err
	}
	return &Source{
		Name:   target.Name,
		Origin: fmt.Sprintf("git+%s@%s:%s", url, hash.String(), target.Main),
		Text:   text,
	}, nil
}

// openRepository opens a repository on disk directly, or clones a remote
// one into memory.
func openRepository(ctx context.Context, manifest *Manifest, url string) (*git.Repository, error) {
	local := url
	if !filepath.IsAbs(local) && manifest != nil {
		local = filepath.Join(manifest.Dir(), local)
	}
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		repo, err := git.PlainOpen(local)
		if err != nil {
			return nil, fmt.Errorf("git open %s: %w", local, err)
		}
		return repo, nil
	}
	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
	if err != nil {
		return nil, fmt.Errorf("git clone %s: %w", url, err)
	}
	return repo, nil
}

// gitRevisionFromSpec picks the revision to read. With no pin, HEAD is used.
// For branches the remote-tracking name is tried first, and the branch name
// is returned so the caller can fall back to refs/heads.
func gitRevisionFromSpec(target *TargetSpec) (plumbing.Revision, string) {
	switch {
	case target.Rev != "":
		return plumbing.Revision(target.Rev), ""
	case target.Tag != "":
		return plumbing.Revision(plumbing.NewTagReferenceName(target.Tag)), ""
	case target.Branch != "":
		return plumbing.Revision(plumbing.NewRemoteReferenceName(git.DefaultRemoteName, target.Branch)), target.Branch
	default:
		return plumbing.Revision(plumbing.HEAD), ""
	}
}

func readCommitFile(commit *object.Commit, name string) (string, error) {
	clean := path.Clean(filepath.ToSlash(name))
	if clean == "." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("invalid main path %q", name)
	}
	file, err := commit.File(clean)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("%s not found at %s", clean, commit.Hash)
		}
		return "", fmt.Errorf("read %s: %w", clean, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", clean, err)
	}
	return contents, nil
}
