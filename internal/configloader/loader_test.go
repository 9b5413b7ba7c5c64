package configloader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/gosmf/pkg/config"
)

// isolated returns options that only look at the project directory.
func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Layout.Scale != 2 {
		t.Errorf("expected default scale 2, got %v", result.Config.Layout.Scale)
	}
	if result.Config.Layout.Direction != "vertical" {
		t.Errorf("expected default direction vertical, got %q", result.Config.Layout.Direction)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), `
layout:
  scale: 1
  direction: horizontal
ignore:
  - "gen/**"
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Layout.Scale != 1 {
		t.Errorf("expected scale 1, got %v", result.Config.Layout.Scale)
	}
	if result.Config.Layout.Direction != "horizontal" {
		t.Errorf("expected direction horizontal, got %q", result.Config.Layout.Direction)
	}
	if result.Config.Layout.TextSize != 12 {
		t.Errorf("expected text_size to keep its default, got %v", result.Config.Layout.TextSize)
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "gen/**" {
		t.Errorf("expected ignore [gen/**], got %v", result.Config.Ignore)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "layout:\n  gap: 10\n")
	nested := filepath.Join(tmpDir, "screens", "home")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Layout.Gap != 10 {
		t.Errorf("expected gap 10 from parent config, got %v", result.Config.Layout.Gap)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "layout:\n  width: 1024\n  height: 768\n")
	customPath := filepath.Join(tmpDir, "custom-config.yml")
	writeConfig(t, customPath, `
layout:
  width: 320
render:
  background: "#000000"
`)

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Layout.Width != 320 {
		t.Errorf("expected explicit width 320, got %v", result.Config.Layout.Width)
	}
	if result.Config.Layout.Height != 768 {
		t.Errorf("expected project height 768, got %v", result.Config.Layout.Height)
	}
	if result.Config.Render.Background != "#000000" {
		t.Errorf("expected background #000000, got %q", result.Config.Render.Background)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("expected explicit config loaded last, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "layout:\n  measurer: face\n  scale: 3\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Layout: config.LayoutConfig{Measurer: config.MeasurerCells},
		Format: config.FormatSARIF,
		Jobs:   8,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Layout.Measurer != config.MeasurerCells {
		t.Errorf("expected measurer cells (CLI override), got %q", result.Config.Layout.Measurer)
	}
	if result.Config.Layout.Scale != 3 {
		t.Errorf("expected scale 3 from project, got %v", result.Config.Layout.Scale)
	}
	if result.Config.Format != config.FormatSARIF {
		t.Errorf("expected format sarif, got %q", result.Config.Format)
	}
	if result.Config.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Jobs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GOSMF_LAYOUT_SCALE", "1.5")
	t.Setenv("GOSMF_DIRECTION", "horizontalReverse")
	t.Setenv("GOSMF_IGNORE", "a/**, b/*.smf")
	t.Setenv("GOSMF_FMT_INDENT", "2")

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "layout:\n  scale: 4\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Layout.Scale != 1.5 {
		t.Errorf("expected env scale 1.5 over project, got %v", result.Config.Layout.Scale)
	}
	if result.Config.Layout.Direction != "horizontalReverse" {
		t.Errorf("expected env direction, got %q", result.Config.Layout.Direction)
	}
	if got := strings.Join(result.Config.Ignore, "|"); got != "a/**|b/*.smf" {
		t.Errorf("expected trimmed ignore list, got %q", got)
	}
	if result.Config.Formatter.Indent != 2 {
		t.Errorf("expected indent 2, got %d", result.Config.Formatter.Indent)
	}
}

func TestLoad_EnvInvalidNumber(t *testing.T) {
	t.Setenv("GOSMF_WIDTH", "wide")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "GOSMF_WIDTH") {
		t.Fatalf("expected error naming GOSMF_WIDTH, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "direction", content: "layout:\n  direction: diagonal\n", field: "layout.direction"},
		{name: "measurer", content: "layout:\n  measurer: ruler\n", field: "layout.measurer"},
		{name: "background", content: "render:\n  background: red\n", field: "render.background"},
		{name: "negative scale", content: "layout:\n  scale: -1\n", field: "layout.scale"},
		{name: "bad glob", content: "ignore:\n  - \"[\"\n", field: "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
			if !strings.Contains(err.Error(), ".gosmf.yml:2: ") {
				t.Errorf("error %q does not name the config file and line", err)
			}
		})
	}
}

func TestValidateWithFile_Lines(t *testing.T) {
	t.Parallel()

	content := []byte("# project settings\nlayout:\n  scale: 1\n  direction: diagonal\nignore:\n  - build/**\n  - \"[\"\n")
	cfg, err := config.FromYAML(content)
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}

	result := ValidateWithFile(cfg, "gosmf.yml", content)
	lines := map[string]int{}
	for _, e := range result.Errors {
		lines[e.Field] = e.Line
	}
	if lines["layout.direction"] != 4 {
		t.Errorf("layout.direction line = %d, want 4", lines["layout.direction"])
	}
	if lines["ignore[1]"] != 7 {
		t.Errorf("ignore[1] line = %d, want 7", lines["ignore[1]"])
	}

	jsonContent := []byte("{\n  \"layout\": {\"measurer\": \"ruler\"}\n}\n")
	cfg, err = config.FromYAML(jsonContent)
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	result = ValidateWithFile(cfg, ".gosmf.json", jsonContent)
	if len(result.Errors) != 1 || result.Errors[0].Line != 2 {
		t.Errorf("expected one error on line 2, got %+v", result.Errors)
	}

	result = ValidateWithFile(cfg, ".gosmf.json", nil)
	if len(result.Errors) != 1 || result.Errors[0].Line != 0 {
		t.Errorf("expected no line without content, got %+v", result.Errors)
	}
}

func TestLoad_ExtensionWarningNamesFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "extensions: [\"smf\"]\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], ".gosmf.yml") || !strings.Contains(result.Warnings[0], "never match") {
		t.Errorf("unexpected warning %q", result.Warnings[0])
	}
}

func TestLoad_UnknownKeysWarn(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "layout:\n  scale: 1\n  colour: red\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Layout.Scale != 1 {
		t.Errorf("expected known keys to load, got scale %v", result.Config.Layout.Scale)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "colour") {
		t.Errorf("expected a warning naming the unknown key, got %v", result.Warnings)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "layout: [\n")

	if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".gosmf.yml"), "layout:\n  gap: 1\n")
	repo := filepath.Join(tmpDir, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, err := FindProjectConfig(context.Background(), repo)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if path != "" {
		t.Errorf("expected search to stop at the repository root, found %s", path)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Layout: config.LayoutConfig{Gap: 8}},
		&config.Config{Extensions: []string{".smf"}},
	)

	if merged.Layout.Gap != 8 {
		t.Errorf("expected gap 8, got %v", merged.Layout.Gap)
	}
	if merged.Layout.Scale != 2 {
		t.Errorf("expected default scale to survive, got %v", merged.Layout.Scale)
	}
	if len(merged.Extensions) != 1 {
		t.Errorf("expected extensions replaced, got %v", merged.Extensions)
	}
	if MergeAll() != nil {
		t.Error("expected nil for no configs")
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if _, ok := vars["GOSMF_LAYOUT_SCALE"]; !ok {
		t.Error("expected GOSMF_LAYOUT_SCALE to be listed")
	}
	if got := GetEnvVarName("layout.measurer"); got != "GOSMF_MEASURER" {
		t.Errorf("GetEnvVarName(layout.measurer) = %q", got)
	}
}

func TestConfigPaths_Layers(t *testing.T) {
	t.Parallel()

	paths := &ConfigPaths{
		System:   "/etc/gosmf/config.yaml",
		Project:  "/work/.gosmf.yml",
		Explicit: "/tmp/ci.yml",
	}

	layers := paths.Layers()
	want := []Layer{
		{Name: LayerSystem, Path: "/etc/gosmf/config.yaml"},
		{Name: LayerProject, Path: "/work/.gosmf.yml"},
		{Name: LayerExplicit, Path: "/tmp/ci.yml"},
	}
	if len(layers) != len(want) {
		t.Fatalf("Layers() = %v, want %v", layers, want)
	}
	for idx := range want {
		if layers[idx] != want[idx] {
			t.Errorf("layer %d = %v, want %v", idx, layers[idx], want[idx])
		}
	}

	if got := (&ConfigPaths{}).Layers(); len(got) != 0 {
		t.Errorf("empty paths should have no layers, got %v", got)
	}
}
