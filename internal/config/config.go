// Package config loads csstree configuration from .csstree.yaml or the
// "csstree" key of package.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	cssparser "bennypowers.dev/csstree/css/parser"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PackageJSONKey is the package.json field holding configuration
const PackageJSONKey = "csstree"

// FileNames are the configuration files looked up in a project root, in
// order of preference
var FileNames = []string{".csstree.yaml", ".csstree.yml"}

// ErrInvalidConfig is returned for configuration that fails validation
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats for parsed rule chains
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config controls file discovery and parser limits
type Config struct {
	// Include lists doublestar globs of files to process
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	// Exclude lists doublestar globs removed from the included files
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	// DefaultStylesheet is parsed before any document so its rules come first
	DefaultStylesheet string `yaml:"defaultStylesheet,omitempty" json:"defaultStylesheet,omitempty"`
	// MaxTokenLength bounds the text of a single token; 0 keeps the default
	MaxTokenLength int `yaml:"maxTokenLength,omitempty" json:"maxTokenLength,omitempty"`
	// MaxDepth bounds selector and function nesting; 0 keeps the default
	MaxDepth int `yaml:"maxDepth,omitempty" json:"maxDepth,omitempty"`
	// Format is the output format of the parse command
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// DefaultConfig returns the configuration used when none is found
func DefaultConfig() *Config {
	return &Config{
		Include: []string{"**/*.css"},
		Format:  FormatYAML,
	}
}

// Merge returns a copy of c with every field set in other taking its place.
// A nil other returns a copy of c.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	merged.Include = slices.Clone(c.Include)
	merged.Exclude = slices.Clone(c.Exclude)
	if other == nil {
		return &merged
	}
	if len(other.Include) > 0 {
		merged.Include = slices.Clone(other.Include)
	}
	if len(other.Exclude) > 0 {
		merged.Exclude = slices.Clone(other.Exclude)
	}
	if other.DefaultStylesheet != "" {
		merged.DefaultStylesheet = other.DefaultStylesheet
	}
	if other.MaxTokenLength != 0 {
		merged.MaxTokenLength = other.MaxTokenLength
	}
	if other.MaxDepth != 0 {
		merged.MaxDepth = other.MaxDepth
	}
	if other.Format != "" {
		merged.Format = other.Format
	}
	return &merged
}

// Validate checks limits, the output format and every glob pattern
func (c *Config) Validate() error {
	var errs []error
	if c.MaxTokenLength < 0 {
		errs = append(errs, fmt.Errorf("maxTokenLength must not be negative, got %d", c.MaxTokenLength))
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("maxDepth must not be negative, got %d", c.MaxDepth))
	}
	switch c.Format {
	case "", FormatYAML, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("format must be %q or %q, got %q", FormatYAML, FormatJSON, c.Format))
	}
	for _, pattern := range slices.Concat(c.Include, c.Exclude) {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("bad glob pattern %q", pattern))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Matches reports whether the slash separated relative path is included
// and not excluded
func (c *Config) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	return matchesAny(c.Include, relPath) && !matchesAny(c.Exclude, relPath)
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// ParserOptions converts the configured limits to parser options
func (c *Config) ParserOptions() []cssparser.Option {
	var opts []cssparser.Option
	if c.MaxTokenLength > 0 {
		opts = append(opts, cssparser.WithMaxTokenLength(c.MaxTokenLength))
	}
	if c.MaxDepth > 0 {
		opts = append(opts, cssparser.WithMaxDepth(c.MaxDepth))
	}
	return opts
}

// LoadFile reads a YAML configuration file. Files ending in .json are read
// as JSON with comments.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user supplied config path
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// readPackageJSON returns the csstree field of package.json under rootPath,
// or nil when the file or the field doesn't exist.
func readPackageJSON(rootPath string) (*Config, error) {
	path := filepath.Join(rootPath, "package.json")
	data, err := os.ReadFile(path) //nolint:gosec // G304: Reading workspace package.json - local trusted environment
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	// Parse as JSONC (allows comments)
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	raw, ok := pkg[PackageJSONKey]
	if !ok {
		return nil, nil
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%s must be an object: %w", PackageJSONKey, err)
	}
	return &cfg, nil
}

// Load finds the configuration of the project at rootPath and merges it over
// DefaultConfig. Config files take precedence over package.json. With no
// configuration present the defaults are returned.
func Load(rootPath string) (*Config, error) {
	var found *Config
	for _, name := range FileNames {
		path := filepath.Join(rootPath, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		found = cfg
		break
	}

	if found == nil {
		cfg, err := readPackageJSON(rootPath)
		if err != nil {
			return nil, err
		}
		found = cfg
	}

	merged := DefaultConfig().Merge(found)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
