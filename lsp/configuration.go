package lsp

import (
	"path/filepath"
	"slices"

	"bennypowers.dev/csstree/internal/config"
	"bennypowers.dev/csstree/internal/log"
)

// GetConfig returns the effective configuration. Callers must not modify it.
func (s *Server) GetConfig() *config.Config {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig replaces the configuration. Parser limits apply to the next
// analysis of every document.
func (s *Server) SetConfig(cfg *config.Config) {
	s.configMu.Lock()
	s.config = cfg
	root := s.rootPath
	s.configMu.Unlock()

	s.documents.Configure(root, cfg.ParserOptions()...)
}

// LoadConfig reads the configuration of the workspace root, falling back to
// the defaults without a root. On error the current configuration is kept.
func (s *Server) LoadConfig() error {
	root := s.RootPath()
	if root == "" {
		s.SetConfig(config.DefaultConfig())
		return nil
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	log.Info("Loaded configuration for %s (maxTokenLength: %d, maxDepth: %d)", root, cfg.MaxTokenLength, cfg.MaxDepth)
	s.SetConfig(cfg)
	return nil
}

// IsConfigFile reports whether path is a configuration file of the
// workspace root
func (s *Server) IsConfigFile(path string) bool {
	root := s.RootPath()
	if root == "" {
		return false
	}
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(root) {
		return false
	}
	return slices.Contains(configFileNames(), filepath.Base(path))
}

func configFileNames() []string {
	return append(slices.Clone(config.FileNames), "package.json")
}
