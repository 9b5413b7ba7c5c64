package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// BackupSuffix is appended to a path to name its sidecar backup.
const BackupSuffix = ".gosmf.bak"

// WriteAtomic writes content to path through a temp file in the same
// directory and a rename, so readers see either the old or the new file.
// If mode is 0, DefaultFileMode is used. On error the original is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// WriteAtomicIfChanged writes content only if it differs from what is on
// disk. It reports whether the file was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceOptions control Replace.
type ReplaceOptions struct {
	// Backup keeps the previous content at path+BackupSuffix. An existing
	// backup is never overwritten, so it always holds the oldest content.
	Backup bool
}

// Replace rewrites the file captured by snap with content. It fails with
// ErrModified if the file changed after the snapshot was taken, and keeps the
// snapshot's permissions. It reports whether the file was written.
func Replace(ctx context.Context, snap *Snapshot, content []byte, opts ReplaceOptions) (bool, error) {
	modified, err := snap.Modified(ctx)
	if err != nil {
		return false, err
	}
	if modified {
		return false, fmt.Errorf("%w: %s", ErrModified, snap.Path)
	}

	if opts.Backup {
		if err := backup(ctx, snap); err != nil {
			return false, err
		}
	}

	return WriteAtomicIfChanged(ctx, snap.Path, content, snap.Mode)
}

func backup(ctx context.Context, snap *Snapshot) error {
	backupPath := snap.Path + BackupSuffix
	if _, err := os.Stat(backupPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(snap.Path)
	if err != nil {
		return fmt.Errorf("read original for backup: %w", err)
	}
	if err := WriteAtomic(ctx, backupPath, content, snap.Mode); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
