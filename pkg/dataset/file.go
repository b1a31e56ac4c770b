package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryInterval = 100 * time.Millisecond

// readFile reads the whole file at path, mapping absence to ErrNotFound.
func readFile(path string) ([]byte, error) {
	//nolint:gosec // Paths come from user configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeFile persists data to path under an exclusive advisory lock,
// creating parent directories as needed. The content is written to a
// temporary sibling and renamed into place, so readers never observe a
// partial file and a failed write leaves existing content intact. The lock
// file stays behind: unlinking it would let a second writer lock a fresh
// inode while the first still holds the old one.
func writeFile(ctx context.Context, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("%w: creating directory for %s: %w", ErrWrite, path, err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("%w: acquiring lock for %s: %w", ErrWrite, path, err)
	}
	if !locked {
		return fmt.Errorf("%w: could not lock %s", ErrWrite, path)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replacing %s: %w", ErrWrite, path, err)
	}
	return nil
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
