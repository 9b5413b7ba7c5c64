package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gosmf/pkg/source"
)

// Discover finds candidate sources under opts.Paths. It returns a sorted,
// de-duplicated list of absolute file paths. Hidden and vendored directories
// are skipped while walking; explicitly named files are only filtered by
// extension and globs.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	walk := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if walk.accepts(absPath) {
				walk.add(absPath)
			}
			continue
		}
		if err := walk.dir(absPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(walk.files)
	return walk.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

func (w *walker) dir(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if w.skipDir(path, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(path)
		}

		if w.accepts(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (w *walker) skipDir(path, name string) bool {
	relPath := w.rel(path)
	return strings.HasPrefix(name, ".") ||
		source.IsVendored(relPath+"/") ||
		matchesAny(relPath, w.opts.ExcludeGlobs)
}

// symlink handles a link found while walking. Broken links and links to
// directories (unless FollowSymlinks is set) are skipped.
func (w *walker) symlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // Unreadable targets are skipped.
	}
	if !info.IsDir() {
		if w.accepts(path) {
			w.add(path)
		}
		return nil
	}
	if !w.opts.FollowSymlinks {
		return nil
	}
	// Walk the target rather than the link so WalkDir does not stop at it.
	return w.dir(target)
}

func (w *walker) accepts(path string) bool {
	if !hasExtension(path, w.extensions) {
		return false
	}
	relPath := w.rel(path)
	if matchesAny(relPath, w.opts.ExcludeGlobs) {
		return false
	}
	return len(w.opts.IncludeGlobs) == 0 || matchesAny(relPath, w.opts.IncludeGlobs)
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(candidate string) bool {
		return strings.EqualFold(candidate, ext)
	})
}
