package source

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Fences parses Markdown content and returns the smf code fences in
// document order.
func Fences(path string, content []byte) []Block {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(content))

	var blocks []Block
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			return ast.WalkContinue, nil
		}
		if !IsFenceTag(string(fence.Info.Segment.Value(content))) {
			return ast.WalkSkipChildren, nil
		}
		blocks = append(blocks, fenceBlock(path, content, fence))
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func fenceBlock(path string, content []byte, fence *ast.FencedCodeBlock) Block {
	lines := fence.Lines()

	var buf bytes.Buffer
	for idx := range lines.Len() {
		segment := lines.At(idx)
		buf.Write(segment.Value(content))
	}

	// An empty fence starts on the line after its info string.
	start := fence.Info.Segment.Start
	line := lineOf(content, start) + 1
	if lines.Len() > 0 {
		line = lineOf(content, lines.At(0).Start)
	}
	return Block{Path: path, Content: buf.String(), Line: line}
}

func lineOf(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return bytes.Count(content[:offset], []byte("\n"))
}
