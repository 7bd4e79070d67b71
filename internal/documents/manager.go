package documents

import (
	"fmt"
	"strings"
	"sync"

	cssparser "bennypowers.dev/csstree/css/parser"
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/parser"
	"bennypowers.dev/csstree/internal/position"
	"bennypowers.dev/csstree/internal/uriutil"
	lru "github.com/hashicorp/golang-lru/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DefaultCacheSize is the number of document analyses kept in memory
const DefaultCacheSize = 128

// Analysis is the parse of one version of a document
type Analysis struct {
	LanguageID string
	Result     *parser.Result
	Colors     []parser.ColorRef
}

// Manager manages text documents for the language server
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex

	// cache holds analyses by configuration generation, URI, language and
	// content hash
	cache      *lru.Cache[string, *Analysis]
	opts       []cssparser.Option
	root       string
	generation uint64
}

// NewManager creates a new document manager
func NewManager() *Manager {
	cache, err := lru.New[string, *Analysis](DefaultCacheSize)
	if err != nil {
		// only possible for a non-positive size
		panic(err)
	}
	return &Manager{
		documents: make(map[string]*Document),
		cache:     cache,
	}
}

// Configure sets the parser options and the workspace root used to label
// documents in error messages. Cached analyses are discarded.
func (m *Manager) Configure(root string, opts ...cssparser.Option) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.root = root
	m.opts = opts
	// Analyses still running with the old options add under the old
	// generation and are never read
	m.generation++
	m.cache.Purge()
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all managed documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	delete(m.documents, uri)
	return nil
}

// ContentChanges converts the change events of a didChange notification,
// which arrive as either ranged or whole-document events.
func ContentChanges(events []any) ([]protocol.TextDocumentContentChangeEvent, error) {
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(events))
	for _, event := range events {
		switch e := event.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, e)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: e.Text})
		default:
			return nil, fmt.Errorf("unexpected content change %T", event)
		}
	}
	return changes, nil
}

// DidChange handles the textDocument/didChange notification
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	content := doc.Content()
	for _, change := range changes {
		// If no range is provided, this is a full document update
		if change.Range == nil {
			content = change.Text
			continue
		}
		updated, err := applyIncrementalChange(content, *change.Range, change.Text)
		if err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
		content = updated
	}

	if err := doc.SetContent(content, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyIncrementalChange replaces the text in changeRange. LSP positions use
// UTF-16 code units; characters past the end of a line are clamped.
func applyIncrementalChange(content string, changeRange protocol.Range, text string) (string, error) {
	start, err := byteOffset(content, changeRange.Start, "start")
	if err != nil {
		return "", err
	}
	end, err := byteOffset(content, changeRange.End, "end")
	if err != nil {
		return "", err
	}
	if end < start {
		return "", fmt.Errorf("range end %d:%d precedes start %d:%d",
			changeRange.End.Line, changeRange.End.Character,
			changeRange.Start.Line, changeRange.Start.Character)
	}
	return content[:start] + text + content[end:], nil
}

// byteOffset converts pos to an offset into content. The position at
// character 0 of the line after the last one addresses the end of the
// document.
func byteOffset(content string, pos protocol.Position, which string) (int, error) {
	lineStart := 0
	for line := uint32(0); line < pos.Line; line++ {
		nl := strings.IndexByte(content[lineStart:], '\n')
		if nl < 0 {
			if line == pos.Line-1 && pos.Character == 0 {
				return len(content), nil
			}
			return 0, fmt.Errorf("%s line %d out of bounds (total lines: %d)", which, pos.Line, line+1)
		}
		lineStart += nl + 1
	}

	lineEnd := len(content)
	if nl := strings.IndexByte(content[lineStart:], '\n'); nl >= 0 {
		lineEnd = lineStart + nl
	}
	return lineStart + position.UTF16ToByteOffset(content[lineStart:lineEnd], int(pos.Character)), nil
}

// Analyze parses the CSS of the document at uri. Results are cached until
// the document's content changes. It returns nil for unknown documents and
// for languages without CSS.
func (m *Manager) Analyze(uri string) (*Analysis, error) {
	m.mu.RLock()
	doc, ok := m.documents[uri]
	if !ok || !doc.Supported() {
		m.mu.RUnlock()
		return nil, nil
	}
	languageID, content := doc.LanguageID(), doc.Content()
	key := fmt.Sprintf("%d\x00%s\x00%s\x00%s", m.generation, uri, languageID, doc.Hash())
	opts, label := m.opts, uriutil.Label(uri, m.root)
	m.mu.RUnlock()

	if cached, ok := m.cache.Get(key); ok {
		return cached, nil
	}

	p := cssparser.New(opts...)
	result, err := parser.Parse(p, content, languageID, label)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", uri, err)
	}
	analysis := &Analysis{
		LanguageID: languageID,
		Result:     result,
		Colors:     parser.Colors(content, languageID),
	}
	log.Debug("Parsed %s: %d rules, %d errors", label, result.Rules.Len(), len(result.Errors))

	m.cache.Add(key, analysis)
	return analysis, nil
}

// CacheLen returns the number of cached analyses
func (m *Manager) CacheLen() int {
	return m.cache.Len()
}
