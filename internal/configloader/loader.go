// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gosmf/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOSMF_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gosmf.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gosmf/config.yaml)
//  6. System config (/etc/gosmf/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	skipped := map[string]bool{
		LayerSystem:  opts.IgnoreSystemConfig,
		LayerUser:    opts.IgnoreUserConfig,
		LayerProject: opts.IgnoreProjectConfig,
	}
	for _, layer := range paths.Layers() {
		if skipped[layer.Name] {
			continue
		}
		fileCfg, content, warnings, err := loadConfigFile(layer.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.Name, err)
		}
		fileCheck := ValidateWithFile(fileCfg, layer.Path, content)
		if !fileCheck.Valid() {
			return nil, &fileCheck.Errors[0]
		}
		for _, w := range fileCheck.Warnings {
			warnings = append(warnings, w.Error())
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.Path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	// File layers are already checked; this catches values from the
	// environment and flags. Warnings about file values were reported above.
	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	if validation.HasWarnings() && opts.CLIConfig != nil {
		for _, w := range Validate(opts.CLIConfig).Warnings {
			result.Warnings = append(result.Warnings, w.Message)
		}
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Unknown keys are
// reported as warnings and otherwise ignored.
func loadConfigFile(path string) (*config.Config, []byte, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read file: %w", err)
	}

	cfg := &config.Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	strictErr := decoder.Decode(cfg)
	if strictErr == nil || errors.Is(strictErr, io.EOF) {
		return cfg, content, nil, nil
	}

	// Retry leniently so a typo in one key does not discard the file.
	cfg, err = config.FromYAML(content)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, content, []string{fmt.Sprintf("%s: %v", path, strictErr)}, nil
}
