// Package testutil provides a ServerContext for handler tests.
package testutil

import (
	"path/filepath"
	"slices"

	"bennypowers.dev/csstree/internal/config"
	"bennypowers.dev/csstree/internal/documents"
	"bennypowers.dev/csstree/lsp/types"
	"github.com/tliron/glsp"
)

var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext implements types.ServerContext for testing.
// Behavior can be customized through the optional callback fields.
type MockServerContext struct {
	docs               *documents.Manager
	rootURI            string
	rootPath           string
	config             *config.Config
	glspContext        *glsp.Context
	diagnosticCapable  *bool
	usePullDiagnostics bool

	// Optional callbacks for custom behavior in tests
	LoadConfigFunc         func() error
	RegisterWatchersFunc   func(*glsp.Context) error
	PublishDiagnosticsFunc func(*glsp.Context, string) error

	// Tracking for tests that verify calls were made
	LoadConfigCalled       bool
	RegisterWatchersCalled bool
	Published              []string
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:   documents.NewManager(),
		config: config.DefaultConfig(),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

func (m *MockServerContext) RootURI() string         { return m.rootURI }
func (m *MockServerContext) RootPath() string        { return m.rootPath }
func (m *MockServerContext) SetRootURI(uri string)   { m.rootURI = uri }
func (m *MockServerContext) SetRootPath(path string) { m.rootPath = path }

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() *config.Config {
	return m.config
}

// SetConfig replaces the configuration and reconfigures the document manager
func (m *MockServerContext) SetConfig(cfg *config.Config) {
	m.config = cfg
	m.docs.Configure(m.rootPath, cfg.ParserOptions()...)
}

// LoadConfig records the call and runs LoadConfigFunc, if set
func (m *MockServerContext) LoadConfig() error {
	m.LoadConfigCalled = true
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc()
	}
	return nil
}

// IsConfigFile reports whether path names a configuration file of the root
func (m *MockServerContext) IsConfigFile(path string) bool {
	if m.rootPath == "" || filepath.Dir(path) != filepath.Clean(m.rootPath) {
		return false
	}
	name := filepath.Base(path)
	return name == "package.json" || slices.Contains(config.FileNames, name)
}

// RegisterFileWatchers records the call and runs RegisterWatchersFunc, if set
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

func (m *MockServerContext) GLSPContext() *glsp.Context       { return m.glspContext }
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) { m.glspContext = ctx }

// ClientDiagnosticCapability returns the capability set with
// SetClientDiagnosticCapability, or nil
func (m *MockServerContext) ClientDiagnosticCapability() *bool {
	return m.diagnosticCapable
}

// SetClientDiagnosticCapability simulates capability detection
func (m *MockServerContext) SetClientDiagnosticCapability(capable bool) {
	m.diagnosticCapable = &capable
}

func (m *MockServerContext) UsePullDiagnostics() bool       { return m.usePullDiagnostics }
func (m *MockServerContext) SetUsePullDiagnostics(use bool) { m.usePullDiagnostics = use }

// PublishDiagnostics records the URI and runs PublishDiagnosticsFunc, if set
func (m *MockServerContext) PublishDiagnostics(context *glsp.Context, uri string) error {
	m.Published = append(m.Published, uri)
	if m.PublishDiagnosticsFunc != nil {
		return m.PublishDiagnosticsFunc(context, uri)
	}
	return nil
}
