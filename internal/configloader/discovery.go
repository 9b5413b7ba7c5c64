package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Layer names, lowest precedence first.
const (
	LayerSystem   = "system"
	LayerUser     = "user"
	LayerProject  = "project"
	LayerExplicit = "explicit"
)

// ConfigPaths holds the config file found for each layer. Layers without a
// file are empty.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Layer is one config file in merge order.
type Layer struct {
	Name string
	Path string
}

// Layers returns the layers that have a file, lowest precedence first.
func (p *ConfigPaths) Layers() []Layer {
	all := []Layer{
		{Name: LayerSystem, Path: p.System},
		{Name: LayerUser, Path: p.User},
		{Name: LayerProject, Path: p.Project},
		{Name: LayerExplicit, Path: p.Explicit},
	}
	layers := all[:0]
	for _, layer := range all {
		if layer.Path != "" {
			layers = append(layers, layer)
		}
	}
	return layers
}

// ProjectConfigFiles are the project config names, most preferred first.
// init writes the first one.
//
//nolint:gochecknoglobals // read-only table
var ProjectConfigFiles = []string{
	".gosmf.yml",
	".gosmf.yaml",
	"gosmf.yml",
	"gosmf.yaml",
	".gosmf.json",
}

// globalConfigFiles are the names looked up in the system and user
// directories.
//
//nolint:gochecknoglobals // read-only table
var globalConfigFiles = []string{"config.yaml", "config.yml"}

// vcsRootMarkers end the upward project search.
//
//nolint:gochecknoglobals // read-only table
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project config files for a run
// started in workDir. The explicit layer is left to the caller.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), globalConfigFiles),
		User:    firstFile(userConfigDir(), globalConfigFiles),
		Project: project,
	}, nil
}

// systemConfigDir is /etc/gosmf, or %ProgramData%\gosmf on Windows.
func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/gosmf"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "gosmf")
}

// userConfigDir follows os.UserConfigDir, which honours XDG_CONFIG_HOME.
func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gosmf")
}

// FindProjectConfig walks up from startDir (the working directory when
// empty) and returns the first project config file. The walk ends at a
// repository root, the home directory or the filesystem root; finding
// nothing is not an error.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, ProjectConfigFiles); path != "" {
			return path, nil
		}
		if isVCSRoot(dir) || dir == home {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
