package git

import (
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
)

// CloneConfig contains configuration for cloning a repository
type CloneConfig struct {
	// URL is the repository URL to clone
	URL string

	// Branch is the specific branch to clone (optional)
	Branch string

	// Tag is the specific tag to clone (optional)
	Tag string

	// Commit is the specific commit to clone (optional)
	Commit string

	// Auth holds optional HTTP basic-auth credentials
	Auth *AuthConfig
}

// AuthConfig holds HTTP basic-auth credentials for private repositories
type AuthConfig struct {
	Username string
	Password string
}

// RepositoryInfo contains information about a cloned Git repository
type RepositoryInfo struct {
	// Repository is the go-git repository instance
	Repository *git.Repository

	// Branch is the current branch name
	Branch string

	// RemoteURL is the remote repository URL
	RemoteURL string

	// storerFilesystem holds the in-memory filesystem containing the Git
	// object database. Stored during Clone and cleared in Cleanup to
	// release memory; go-git does not clean up its internal storage.
	storerFilesystem billy.Filesystem

	// objectCache holds the LRU cache for decompressed Git objects. It
	// must be cleared explicitly in Cleanup; the garbage collector cannot
	// reclaim cached objects while this reference exists.
	objectCache cache.Object
}
