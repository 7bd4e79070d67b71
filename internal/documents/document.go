package documents

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"bennypowers.dev/csstree/internal/parser"
	"bennypowers.dev/csstree/internal/uriutil"
)

// Document represents a text document being managed by the language server
type Document struct {
	uri        string
	languageID string
	content    string
	version    int
	hash       string
}

// NewDocument creates a new document. When the client sends a language ID
// that can't carry CSS, the language is inferred from the file extension.
func NewDocument(uri, languageID string, version int, content string) *Document {
	if !parser.IsCSSSupportedLanguage(languageID) {
		if inferred := parser.LanguageForPath(uriutil.URIToPath(uri)); inferred != "" {
			languageID = inferred
		}
	}
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
		hash:       hashContent(content),
	}
}

func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	return d.content
}

// Supported reports whether the document's language carries CSS
func (d *Document) Supported() bool {
	return parser.IsCSSSupportedLanguage(d.languageID)
}

// Hash returns the hex SHA-256 of the content
func (d *Document) Hash() string {
	return d.hash
}

// SetContent updates the document's content and version.
// Returns an error if the provided version is older than the current document version,
// preventing stale updates from being applied.
func (d *Document) SetContent(content string, version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	d.hash = hashContent(content)
	return nil
}
