package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/datacat-dev/datacat/internal/git"
)

// gitDataSet is a read-only dataset backed by a file inside a Git
// repository. The location is "<repository-url>//<path-in-repo>". Load
// clones the repository into memory and reads the file as a string.
//
// Load options:
//   - branch, tag, commit: the ref to read from (at most one).
//   - username, password: HTTP basic-auth credentials (redacted in
//     Describe output).
type gitDataSet struct {
	desc   Descriptor
	client git.Client
	repo   string
	path   string
	clone  git.CloneConfig
}

// locationSeparator splits the repository URL from the in-repo path.
const locationSeparator = "//"

// NewGit creates a repository-file dataset from its descriptor.
func NewGit(desc Descriptor) (DataSet, error) {
	repo, path, err := splitGitLocation(desc.Location)
	if err != nil {
		return nil, fmt.Errorf("git dataset %q: %w", desc.Name, err)
	}

	branch, err := stringArg(desc.LoadArgs, "branch", "")
	if err != nil {
		return nil, fmt.Errorf("git dataset %q: %w", desc.Name, err)
	}
	tag, err := stringArg(desc.LoadArgs, "tag", "")
	if err != nil {
		return nil, fmt.Errorf("git dataset %q: %w", desc.Name, err)
	}
	commit, err := stringArg(desc.LoadArgs, "commit", "")
	if err != nil {
		return nil, fmt.Errorf("git dataset %q: %w", desc.Name, err)
	}
	refCount := 0
	for _, ref := range []string{branch, tag, commit} {
		if ref != "" {
			refCount++
		}
	}
	if refCount > 1 {
		return nil, fmt.Errorf("git dataset %q: branch, tag and commit are mutually exclusive", desc.Name)
	}

	username, err := stringArg(desc.LoadArgs, "username", "")
	if err != nil {
		return nil, fmt.Errorf("git dataset %q: %w", desc.Name, err)
	}
	password, err := stringArg(desc.LoadArgs, "password", "")
	if err != nil {
		return nil, fmt.Errorf("git dataset %q: %w", desc.Name, err)
	}

	clone := git.CloneConfig{
		URL:    repo,
		Branch: branch,
		Tag:    tag,
		Commit: commit,
	}
	if username != "" {
		clone.Auth = &git.AuthConfig{Username: username, Password: password}
	}

	return &gitDataSet{
		desc:   desc,
		client: git.NewDefaultClient(),
		repo:   repo,
		path:   path,
		clone:  clone,
	}, nil
}

// splitGitLocation splits "<repo-url>//<path>" on the last separator after
// the scheme part.
func splitGitLocation(location string) (repo, path string, err error) {
	if location == "" {
		return "", "", fmt.Errorf("location is required")
	}

	// Skip over "scheme://" before searching for the path separator.
	rest := location
	offset := 0
	if idx := strings.Index(location, "://"); idx >= 0 {
		offset = idx + len("://")
		rest = location[offset:]
	}

	idx := strings.Index(rest, locationSeparator)
	if idx < 0 {
		return "", "", fmt.Errorf("location must be \"<repository>//<path>\", got %q", location)
	}

	repo = location[:offset+idx]
	path = rest[idx+len(locationSeparator):]
	if repo == "" || path == "" {
		return "", "", fmt.Errorf("location must be \"<repository>//<path>\", got %q", location)
	}
	return repo, path, nil
}

func (d *gitDataSet) Load(ctx context.Context) (any, error) {
	repoInfo, err := d.client.Clone(ctx, &d.clone)
	if err != nil {
		// Missing repositories surface differently per transport: local
		// paths report ErrRepositoryNotExists, remote ones
		// transport.ErrRepositoryNotFound.
		if errors.Is(err, gogit.ErrRepositoryNotExists) || errors.Is(err, transport.ErrRepositoryNotFound) {
			return nil, fmt.Errorf("%w: repository %s: %w", ErrNotFound, d.repo, err)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", d.repo, err)
	}
	defer func() {
		_ = d.client.Cleanup(repoInfo)
	}()

	content, err := d.client.GetFileContent(repoInfo, d.path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, d.path, d.repo)
		}
		return nil, fmt.Errorf("failed to read %s from %s: %w", d.path, d.repo, err)
	}

	return string(content), nil
}

func (d *gitDataSet) Save(_ context.Context, _ any) error {
	return fmt.Errorf("%w: git dataset %q is read-only", ErrWrite, d.desc.Name)
}

func (d *gitDataSet) Exists(ctx context.Context) (bool, error) {
	repoInfo, err := d.client.Clone(ctx, &d.clone)
	if err != nil {
		return false, nil
	}
	defer func() {
		_ = d.client.Cleanup(repoInfo)
	}()

	_, err = d.client.GetFileContent(repoInfo, d.path)
	return err == nil, nil
}

func (d *gitDataSet) Describe() Description {
	return d.desc.Describe()
}
