package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := &config.Config{
			Extensions: []string{".smf"},
			Ignore:     []string{"vendor/**"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Extensions[0] = ".md"
		clone.Ignore[0] = "changed"
		assert.Equal(t, ".smf", original.Extensions[0])
		assert.Equal(t, "vendor/**", original.Ignore[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Format = config.FormatJSON
		original.Jobs = 4

		clone := original.Clone()
		assert.Equal(t, original, clone)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("defaults serialize", func(t *testing.T) {
		data, err := config.NewConfig().ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "text_size: 12")
		assert.Contains(t, string(data), "measurer: face")
		assert.NotContains(t, string(data), "jobs", "CLI fields are not persisted")
	})

	t.Run("header is prepended", func(t *testing.T) {
		data, err := config.NewConfig().ToYAMLWithHeader("# header")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# header\n\n")
	})

	t.Run("plain header lines become comments", func(t *testing.T) {
		data, err := config.NewConfig().ToYAMLWithHeader("gosmf configuration\n# kept\n")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# gosmf configuration\n# kept\n\n"))
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses JSON", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`{"layout": {"gap": 6}, "fmt": {"indent": 2}}`))
		require.NoError(t, err)
		assert.InDelta(t, 6.0, cfg.Layout.Gap, 1e-9)
		assert.Equal(t, 2, cfg.Formatter.Indent)
	})

	t.Run("parses valid YAML", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`
layout:
  scale: 1.5
  direction: horizontal
fmt:
  indent: 2
ignore:
  - "build/**"
`))
		require.NoError(t, err)
		assert.InDelta(t, 1.5, cfg.Layout.Scale, 1e-9)
		assert.Equal(t, "horizontal", cfg.Layout.Direction)
		assert.Equal(t, 2, cfg.Formatter.Indent)
		assert.Equal(t, []string{"build/**"}, cfg.Ignore)
		assert.Zero(t, cfg.Layout.TextSize, "unset fields stay zero")
	})

	t.Run("rejects invalid YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("layout: [unclosed"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.TemplateOptions
	}{
		{name: "minimal yaml", opts: config.TemplateOptions{}},
		{name: "full yaml", opts: config.TemplateOptions{Full: true}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(testCase.opts)
			require.NoError(t, err)

			cfg, err := config.FromYAML(data)
			require.NoError(t, err)
			assert.InDelta(t, 2, cfg.Layout.Scale, 1e-9)
		})
	}

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "json"})
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Contains(t, doc, "layout")
	})
}
