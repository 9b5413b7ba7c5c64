package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/source"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// LanguageID is the editor language identifier for smf sources.
const LanguageID = "smf"

// Document is one open editor buffer and its parsed smf blocks.
type Document struct {
	URI        string
	LanguageID string
	Version    int32
	Content    string

	// Path is the file path used to classify the buffer. Buffers opened with
	// the smf language ID always classify as smf sources.
	Path string

	Blocks []*Block

	lines []string
}

// Block is one parsed smf source within a document.
type Block struct {
	source.Block

	Module      *smf.Module
	Diagnostics []syntax.Diagnostic
}

// Line returns the 0-based document line without its line ending.
func (d *Document) Line(line int) string {
	if line < 0 || line >= len(d.lines) {
		return ""
	}
	return d.lines[line]
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// BlockAt returns the block containing the 0-based document line.
func (d *Document) BlockAt(line int) (*Block, bool) {
	for _, block := range d.Blocks {
		if line >= block.Line && line < block.Line+max(len(block.Module.Lines), 1) {
			return block, true
		}
	}
	return nil, false
}

// IsSource reports whether the whole document is one smf source rather than
// Markdown with smf fences.
func (d *Document) IsSource() bool {
	return source.Classify(d.Path, []byte(d.Content)) == source.KindSMF
}

func newDocument(uri, languageID string, version int32, content string) *Document {
	path := uriPath(uri)
	if strings.EqualFold(languageID, LanguageID) && !strings.EqualFold(filepath.Ext(path), source.Extension) {
		path += source.Extension
	}

	doc := &Document{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Content:    content,
		Path:       path,
		lines:      splitLines(content),
	}
	for _, extracted := range source.Extract(path, []byte(content)) {
		module, diags := smf.ParseFile(path, extracted.Content)
		doc.Blocks = append(doc.Blocks, &Block{Block: extracted, Module: module, Diagnostics: diags})
	}
	return doc
}

// uriPath returns the filesystem path of a file URI, or the URI itself.
func uriPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Path == "" {
		return uri
	}
	return filepath.FromSlash(parsed.Path)
}

// splitLines splits on LF, CRLF and lone CR.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

// DocumentStore is a thread-safe store of open documents keyed by URI.
type DocumentStore struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewDocumentStore creates a new empty DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open parses content and stores it under uri, replacing any earlier version.
func (ds *DocumentStore) Open(uri, languageID string, version int32, content string) *Document {
	doc := newDocument(uri, languageID, version, content)

	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.documents[uri] = doc
	return doc
}

// Update re-parses an open document with new content, keeping its language
// ID. It reports false when uri is not open.
func (ds *DocumentStore) Update(uri string, version int32, content string) (*Document, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	prev, ok := ds.documents[uri]
	if !ok {
		return nil, false
	}

	doc := newDocument(uri, prev.LanguageID, version, content)
	ds.documents[uri] = doc
	return doc, true
}

// Get retrieves a document by URI.
func (ds *DocumentStore) Get(uri string) (*Document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	doc, ok := ds.documents[uri]
	return doc, ok
}

// Delete removes a document by URI.
func (ds *DocumentStore) Delete(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

// Len returns the number of open documents.
func (ds *DocumentStore) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	return len(ds.documents)
}
