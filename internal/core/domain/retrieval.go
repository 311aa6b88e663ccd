package domain

import "strings"

// DocumentIDPrefix is the identifier prefix the upstream vector store
// requires. Requests carrying an id without this prefix are rejected
// before any upstream call is made.
const DocumentIDPrefix = "file_"

// SnippetLength is the maximum snippet length before ellipsis truncation.
const SnippetLength = 200

// NoContentPlaceholder is returned in place of document text when the
// upstream store has no content chunks for an item.
const NoContentPlaceholder = "No content available"

// Match represents a single search hit.
// It is derived per-request from upstream raw results and never persisted.
type Match struct {
	// ID is the upstream file identifier.
	ID string `json:"id"`

	// Title is the human-readable title, usually the filename.
	Title string `json:"title"`

	// Snippet is the leading content, ellipsis-truncated at SnippetLength.
	Snippet string `json:"text"`

	// URL is the citation URL for the file.
	URL string `json:"url"`
}

// Document represents the full retrieved content for a single identifier.
type Document struct {
	// ID is the upstream file identifier.
	ID string `json:"id"`

	// Title is the human-readable title, usually the filename.
	Title string `json:"title"`

	// Text is the full content, newline-joined from the upstream chunks.
	Text string `json:"text"`

	// URL is the citation URL for the file.
	URL string `json:"url"`

	// Metadata contains upstream file attributes.
	// Nil when the upstream metadata object is empty.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ValidDocumentID reports whether id is acceptable to pass upstream:
// non-empty and carrying the required prefix.
func ValidDocumentID(id string) bool {
	return id != "" && strings.HasPrefix(id, DocumentIDPrefix)
}

// Snippet truncates content to SnippetLength characters, appending an
// ellipsis when truncation occurred. Content at or under the limit is
// returned unchanged. Truncation counts runes, never splitting a
// multibyte character.
func Snippet(content string) string {
	runes := []rune(content)
	if len(runes) > SnippetLength {
		return string(runes[:SnippetLength]) + "..."
	}
	return content
}
