// Package source finds smf sources in files. Plain .smf files are one source;
// Markdown files contribute every code fence tagged smf.
package source

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind classifies an input file.
type Kind uint8

// Kinds.
const (
	KindUnknown Kind = iota
	KindSMF
	KindMarkdown
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindSMF:
		return "smf"
	case KindMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Extension is the file extension of smf sources.
const Extension = ".smf"

// fenceTags are the fence info strings recognised as smf.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fenceTags = []string{"smf", "gosmf"}

// Block is one smf source within a file.
type Block struct {
	Path    string
	Content string

	// Line is the 0-based line of Content's first line within the file.
	Line int
}

// Classify decides how a file is read. The extension wins; otherwise the
// language is detected from name and content.
func Classify(path string, content []byte) Kind {
	if strings.EqualFold(filepath.Ext(path), Extension) {
		return KindSMF
	}
	if enry.GetLanguage(filepath.Base(path), content) == "Markdown" {
		return KindMarkdown
	}
	return KindUnknown
}

// IsVendored reports whether path lies in a vendored or generated directory
// that discovery should skip.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// Extract returns the smf blocks of a file.
func Extract(path string, content []byte) []Block {
	switch Classify(path, content) {
	case KindSMF:
		return []Block{{Path: path, Content: string(content)}}
	case KindMarkdown:
		return Fences(path, content)
	default:
		return nil
	}
}

// IsFenceTag reports whether a fence info string marks smf source.
func IsFenceTag(info string) bool {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return false
	}
	for _, tag := range fenceTags {
		if strings.EqualFold(fields[0], tag) {
			return true
		}
	}
	return false
}
