package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"bennypowers.dev/csstree/css/ast"
	cssparser "bennypowers.dev/csstree/css/parser"
	"bennypowers.dev/csstree/internal/files"
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/parser"
	"bennypowers.dev/csstree/internal/parser/css"
	"golang.org/x/sync/errgroup"
)

// input is one parsed file
type input struct {
	Path     string
	Label    string
	Language string
	Source   string
	Result   *parser.Result
}

// Stylesheet returns the CSS text of the input: the whole file for CSS,
// the stylesheet regions joined by newlines otherwise.
func (in *input) Stylesheet() string {
	if in.Language == "css" {
		return in.Source
	}
	var parts []string
	for _, region := range in.Result.Regions {
		if region.Kind == css.StylesheetRegion {
			parts = append(parts, region.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// Failed reports whether any region of the input had a syntax error
func (in *input) Failed() bool {
	return len(in.Result.Errors) > 0
}

// label names path relative to root when it lies inside it
func label(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// collect expands the command's patterns, or the configured includes when
// there are none, into the supported files to parse.
func (env *environment) collect() ([]string, error) {
	patterns := env.args
	if len(patterns) == 0 {
		patterns = env.cfg.Include
	}
	paths, err := files.Require(env.root, patterns, env.cfg.Exclude)
	if err != nil {
		return nil, err
	}

	supported := paths[:0]
	for _, path := range paths {
		if parser.LanguageForPath(path) == "" {
			log.Debug("Skipping %s: unsupported file type", path)
			continue
		}
		supported = append(supported, path)
	}
	return supported, nil
}

// parseInputs parses the default stylesheet, if configured, followed by
// every matched file. Files are parsed concurrently, one parser per
// goroutine, and returned in order.
func (env *environment) parseInputs(ctx context.Context) ([]*input, error) {
	paths, err := env.collect()
	if err != nil {
		return nil, err
	}
	if env.cfg.DefaultStylesheet != "" {
		defaultPath := env.cfg.DefaultStylesheet
		if !filepath.IsAbs(defaultPath) {
			defaultPath = filepath.Join(env.root, defaultPath)
		}
		paths = append([]string{defaultPath}, paths...)
	}

	inputs := make([]*input, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in, err := env.parseFile(path)
			if err != nil {
				return err
			}
			inputs[i] = in
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

func (env *environment) parseFile(path string) (*input, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: paths come from the user's patterns
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	language := parser.LanguageForPath(path)
	if language == "" {
		// The default stylesheet is CSS whatever its name
		language = "css"
	}

	in := &input{
		Path:     path,
		Label:    label(env.root, path),
		Language: language,
		Source:   string(data),
	}
	p := cssparser.New(env.cfg.ParserOptions()...)
	in.Result, err = parser.Parse(p, in.Source, language, in.Label)
	if err != nil {
		return nil, err
	}
	log.Debug("Parsed %s: %d rules, %d errors", in.Label, in.Result.Rules.Len(), len(in.Result.Errors))
	return in, nil
}

// merge splices the rule chains of inputs in order
func merge(inputs []*input) *ast.Rule {
	var chain *ast.Rule
	for _, in := range inputs {
		chain = ast.Append(chain, in.Result.Rules)
	}
	return chain
}

// reportErrors prints one "label:line: message" line per syntax error and
// returns how many were printed
func reportErrors(w io.Writer, inputs []*input) int {
	count := 0
	for _, in := range inputs {
		for _, regionErr := range in.Result.Errors {
			_, _ = fmt.Fprintf(w, "%s:%d: %s\n", in.Label, regionErr.Line()+1, regionErr.Err.Message)
			count++
		}
	}
	return count
}
