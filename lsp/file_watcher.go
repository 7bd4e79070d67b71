package lsp

import (
	"path/filepath"

	"bennypowers.dev/csstree/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// FileWatcherID identifies the server's watcher registration
const FileWatcherID = "csstree-config-watcher"

// configWatchers returns one watcher per configuration file of the root
func (s *Server) configWatchers() []protocol.FileSystemWatcher {
	root := s.RootPath()
	if root == "" {
		return nil
	}
	names := configFileNames()
	watchers := make([]protocol.FileSystemWatcher, 0, len(names))
	for _, name := range names {
		// Glob patterns use forward-slash file system paths, not URIs
		watchers = append(watchers, protocol.FileSystemWatcher{
			GlobPattern: filepath.ToSlash(filepath.Join(root, name)),
		})
	}
	return watchers
}

// RegisterFileWatchers asks the client to report changes to configuration
// files through workspace/didChangeWatchedFiles.
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// Contexts built in tests have no connection
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	watchers := s.configWatchers()
	if len(watchers) == 0 {
		log.Info("No file watchers to register")
		return nil
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     FileWatcherID,
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request. Calling it synchronously
	// would deadlock the message loop that has to read the response, and
	// glsp logs a rejected registration itself.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
