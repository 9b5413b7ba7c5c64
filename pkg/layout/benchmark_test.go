package layout_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/layout"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/smf"
)

// benchSource builds a screen with rows of cards.
func benchSource(rows int) string {
	var b strings.Builder
	b.WriteString("view(class: list) {\n")
	for idx := range rows {
		fmt.Fprintf(&b, "    view(class: row) {\n        \"item %d\"\n        view(class: badge) { \"%d\" }\n    }\n", idx, idx)
	}
	b.WriteString("}\n")
	b.WriteString("style list {\n    gap: 4px\n    padding: rect_all(8px)\n}\n")
	b.WriteString("style row {\n    direction: horizontal\n    borderWidth: rect_all(1px)\n    borderColor: rgb(200, 200, 200)\n}\n")
	b.WriteString("style badge {\n    padding: rect(2px, 4px, 2px, 4px)\n    backgroundColor: rgb(30, 120, 200)\n}\n")
	return b.String()
}

func BenchmarkParse(b *testing.B) {
	src := benchSource(100)
	b.ResetTimer()
	for range b.N {
		smf.Parse(src)
	}
}

func BenchmarkBuild(b *testing.B) {
	module, _ := smf.Parse(benchSource(100))
	b.ResetTimer()
	for range b.N {
		document.Build(module, registry.New())
	}
}

func BenchmarkLayout(b *testing.B) {
	module, _ := smf.Parse(benchSource(100))
	doc := document.Build(module, registry.New())
	cfg := config.NewConfig().Layout
	viewport := layout.Viewport(cfg)
	measurer := layout.MeasurerFor(config.MeasurerCells)
	opts := layout.OptionsFromConfig(cfg)
	b.ResetTimer()
	for range b.N {
		layout.New(doc, measurer, opts).Layout(viewport)
	}
}
