package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/runner"
)

func discover(t *testing.T, dir string, opts runner.Options) []string {
	t.Helper()

	opts.WorkingDir = dir
	files, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)

	rel := make([]string, 0, len(files))
	for _, file := range files {
		relPath, err := filepath.Rel(dir, file)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(relPath))
	}
	return rel
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.smf":         "view {}",
		"README.md":        "# x",
		"ui/card.smf":      "view {}",
		"ui/card.SMF.bak":  "view {}",
		"src/main.go":      "package main",
		"notes.txt":        "text",
		".hidden/a.smf":    "view {}",
		".dot.smf":         "view {}",
		"vendor/lib/x.smf": "view {}",
	})

	got := discover(t, dir, runner.Options{Paths: []string{"."}})
	assert.Equal(t, []string{"README.md", "main.smf", "ui/card.smf"}, got)
}

func TestDiscover_DefaultsToCurrentDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.smf": "view {}"})

	assert.Equal(t, []string{"a.smf"}, discover(t, dir, runner.Options{}))
}

func TestDiscover_Extensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.smf":      "view {}",
		"b.md":       "# b",
		"c.markdown": "# c",
	})

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{"a.smf", "b.md"},
		},
		{
			name: "from config",
			opts: runner.Options{Config: &config.Config{Extensions: []string{".markdown"}}},
			want: []string{"c.markdown"},
		},
		{
			name: "explicit wins over config",
			opts: runner.Options{
				Extensions: []string{".SMF"},
				Config:     &config.Config{Extensions: []string{".md"}},
			},
			want: []string{"a.smf"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, discover(t, dir, testCase.opts))
		})
	}
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.smf":              "view {}",
		"screens/b.smf":      "view {}",
		"screens/deep/c.smf": "view {}",
		"gen/stale/d.smf":    "view {}",
		"pages/e.smf":        "view {}",
		"pages/skip_f.md":    "# f",
	})

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "exclude directory",
			opts: runner.Options{ExcludeGlobs: []string{"gen/**"}},
			want: []string{"a.smf", "pages/e.smf", "pages/skip_f.md", "screens/b.smf", "screens/deep/c.smf"},
		},
		{
			name: "exclude base name",
			opts: runner.Options{ExcludeGlobs: []string{"skip_*"}},
			want: []string{"a.smf", "gen/stale/d.smf", "pages/e.smf", "screens/b.smf", "screens/deep/c.smf"},
		},
		{
			name: "exclude anywhere",
			opts: runner.Options{ExcludeGlobs: []string{"**/deep/**", "**/stale"}},
			want: []string{"a.smf", "pages/e.smf", "pages/skip_f.md", "screens/b.smf"},
		},
		{
			name: "include",
			opts: runner.Options{IncludeGlobs: []string{"screens/**/*.smf"}},
			want: []string{"screens/b.smf", "screens/deep/c.smf"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, discover(t, dir, testCase.opts))
		})
	}
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ui/a.smf": "view {}", "ui/b.smf": "view {}"})

	got := discover(t, dir, runner.Options{Paths: []string{"ui", "ui/a.smf", "."}})
	assert.Equal(t, []string{"ui/a.smf", "ui/b.smf"}, got)
}

func TestDiscover_ExplicitFileIgnoresHidden(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{".hidden/a.smf": "view {}"})

	got := discover(t, dir, runner.Options{Paths: []string{".hidden/a.smf"}})
	assert.Equal(t, []string{".hidden/a.smf"}, got)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"real/a.smf": "view {}"})

	project := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(project, 0o755))
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(project, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(project, "broken.smf")))

	assert.Empty(t, discover(t, project, runner.Options{}), "directory links are not followed by default")

	target, err := filepath.EvalSymlinks(filepath.Join(dir, "real"))
	require.NoError(t, err)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: project, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(target, "a.smf")}, files)
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"absent"},
		WorkingDir: t.TempDir(),
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}
