package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/source"
)

const readme = "# Demo\n" +
	"\n" +
	"Some prose.\n" +
	"\n" +
	"```smf\n" +
	"view {\n" +
	"    \"hi\"\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"package main\n" +
	"```\n" +
	"\n" +
	"```SMF title\n" +
	"style a { gap: 1px }\n" +
	"```\n"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		content string
		want    source.Kind
	}{
		{path: "ui/main.smf", content: "view {}", want: source.KindSMF},
		{path: "UPPER.SMF", content: "view {}", want: source.KindSMF},
		{path: "README.md", content: readme, want: source.KindMarkdown},
		{path: "main.go", content: "package main\n", want: source.KindUnknown},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, source.Classify(testCase.path, []byte(testCase.content)))
		})
	}
}

func TestFences(t *testing.T) {
	t.Parallel()

	blocks := source.Fences("README.md", []byte(readme))
	require.Len(t, blocks, 2)

	assert.Equal(t, "view {\n    \"hi\"\n}\n", blocks[0].Content)
	assert.Equal(t, 5, blocks[0].Line)
	assert.Equal(t, "README.md", blocks[0].Path)

	assert.Equal(t, "style a { gap: 1px }\n", blocks[1].Content, "tags match case-insensitively")
	assert.Equal(t, 15, blocks[1].Line)
}

func TestFencesEmpty(t *testing.T) {
	t.Parallel()

	blocks := source.Fences("x.md", []byte("text\n\n```smf\n```\n"))
	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].Content)
	assert.Equal(t, 3, blocks[0].Line)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	blocks := source.Extract("a.smf", []byte("view {}\n"))
	require.Len(t, blocks, 1)
	assert.Equal(t, 0, blocks[0].Line)
	assert.Equal(t, "view {}\n", blocks[0].Content)

	assert.Len(t, source.Extract("README.md", []byte(readme)), 2)
	assert.Empty(t, source.Extract("main.go", []byte("package main\n")))
}

func TestIsFenceTag(t *testing.T) {
	t.Parallel()

	assert.True(t, source.IsFenceTag("smf"))
	assert.True(t, source.IsFenceTag("GoSMF {.class}"))
	assert.False(t, source.IsFenceTag(""))
	assert.False(t, source.IsFenceTag("smfx"))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, source.IsVendored("vendor/github.com/x/y.smf"))
	assert.True(t, source.IsVendored("node_modules/pkg/a.smf"))
	assert.False(t, source.IsVendored("ui/main.smf"))
}
