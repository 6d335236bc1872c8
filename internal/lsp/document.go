package lsp

import "sync"

// Document is an open text document mirrored from the editor.
type Document struct {
	URI     string
	Content string
	Version int

	// lines holds the byte offset of each line start, for computing
	// the end position of a whole-document edit.
	lines []int
}

// EndPosition returns the position just past the last byte of the
// document.
func (d *Document) EndPosition() Position {
	last := len(d.lines) - 1
	return Position{
		Line:      uint32(last),                          //nolint:gosec // G115: at least one line offset always exists
		Character: uint32(len(d.Content) - d.lines[last]), //nolint:gosec // G115: offsets never exceed the content length
	}
}

// DocumentStore tracks open documents. Safe for concurrent use.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{documents: make(map[string]*Document)}
}

// Set adds or replaces a document. With full-document sync both open
// and change deliver complete text, so one entry point serves both.
// Replacing wholesale keeps previously returned *Document values
// immutable.
func (s *DocumentStore) Set(uri, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = &Document{
		URI:     uri,
		Content: content,
		Version: version,
		lines:   lineOffsets(content),
	}
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI, or nil when it is not open.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// URIs returns the URIs of all open documents.
func (s *DocumentStore) URIs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	return uris
}

// lineOffsets returns the byte offset of every line start. The first
// line starts at offset zero, so the result is never empty.
func lineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
