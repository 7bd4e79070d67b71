package workspace

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/csstree/internal/config"
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SettingsKey is the key of the server's section in client settings
const SettingsKey = "csstree"

// DidChangeConfiguration handles the workspace/didChangeConfiguration
// notification. The workspace configuration is reloaded and the client's
// settings are merged over it.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	overrides, err := parseConfiguration(params.Settings)
	if err != nil {
		LogWarning(req.GLSP, "Ignoring client settings: %v", err)
		overrides = nil
	}

	if err := req.Server.LoadConfig(); err != nil {
		LogWarning(req.GLSP, "Failed to reload configuration: %v", err)
	}

	if overrides != nil {
		cfg := req.Server.GetConfig().Merge(overrides)
		if err := cfg.Validate(); err != nil {
			LogWarning(req.GLSP, "Ignoring client settings: %v", err)
		} else {
			req.Server.SetConfig(cfg)
		}
	}

	republishDiagnostics(req)
	return nil
}

// parseConfiguration returns the csstree section of the client settings, or
// nil when there is none.
func parseConfiguration(settings any) (*config.Config, error) {
	if settings == nil {
		return nil, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings is not an object")
	}
	section, ok := settingsMap[SettingsKey]
	if !ok {
		return nil, nil
	}

	// Round-trip through JSON to decode into the struct
	data, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &cfg, nil
}

// republishDiagnostics publishes diagnostics for every open document
func republishDiagnostics(req *types.RequestContext) {
	glspCtx := req.Server.GLSPContext()
	if glspCtx == nil {
		return
	}
	for _, doc := range req.Server.AllDocuments() {
		if err := req.Server.PublishDiagnostics(glspCtx, doc.URI()); err != nil {
			log.Warn("Failed to publish diagnostics for %s: %v", doc.URI(), err)
		}
	}
}
