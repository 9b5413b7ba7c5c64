package configloader

import "github.com/yaklabco/gosmf/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Zero values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	result.Layout = mergeLayout(base.Layout, override.Layout)

	if override.Render.Background != "" {
		result.Render.Background = override.Render.Background
	}
	if override.Formatter.Indent != 0 {
		result.Formatter.Indent = override.Formatter.Indent
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeLayout(base, override config.LayoutConfig) config.LayoutConfig {
	result := base

	if override.Scale != 0 {
		result.Scale = override.Scale
	}
	if override.TextSize != 0 {
		result.TextSize = override.TextSize
	}
	if override.Gap != 0 {
		result.Gap = override.Gap
	}
	if override.Direction != "" {
		result.Direction = override.Direction
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.Measurer != "" {
		result.Measurer = override.Measurer
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
