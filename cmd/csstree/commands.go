package main

import (
	"context"
	"fmt"
	"strings"

	"bennypowers.dev/csstree/css/ast"
	"bennypowers.dev/csstree/internal/color"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// runParse prints the rules of every file as one chain, the default
// stylesheet first
func runParse(ctx context.Context, env *environment) error {
	inputs, err := env.parseInputs(ctx)
	if err != nil {
		return err
	}
	failed := reportErrors(env.stderr, inputs)

	dump := stylesheetDump{}
	for _, in := range inputs {
		dump.Files = append(dump.Files, in.Label)
	}
	// Appending links the per-file chains, so this comes last
	dump.Rules = dumpRules(merge(inputs))
	if err := writeDump(env.stdout, env.cfg.Format, dump); err != nil {
		return fmt.Errorf("failed to write rules: %w", err)
	}
	if failed > 0 {
		return errFailed
	}
	return nil
}

// runCheck prints every syntax error and fails when there was one
func runCheck(ctx context.Context, env *environment) error {
	inputs, err := env.parseInputs(ctx)
	if err != nil {
		return err
	}
	if reportErrors(env.stdout, inputs) > 0 {
		return errFailed
	}
	return nil
}

// runFmt prints the canonical rendering of each file's stylesheets
func runFmt(ctx context.Context, env *environment) error {
	inputs, err := env.parseInputs(ctx)
	if err != nil {
		return err
	}

	failed := reportErrors(env.stderr, inputs) > 0
	for _, in := range inputs {
		if in.Failed() {
			continue
		}
		formatted := ast.Format(in.Result.Rules)
		if env.opts.minify {
			formatted, err = minify(in.Label, formatted)
			if err != nil {
				_, _ = fmt.Fprintln(env.stderr, err)
				failed = true
				continue
			}
		}

		switch {
		case env.opts.diff:
			_, _ = fmt.Fprint(env.stdout, diffLines(in.Label, in.Stylesheet(), formatted))
		case len(inputs) > 1:
			_, _ = fmt.Fprintf(env.stdout, "/* %s */\n%s", in.Label, formatted)
		default:
			_, _ = fmt.Fprint(env.stdout, formatted)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// runColors lists the colors of every declaration
func runColors(ctx context.Context, env *environment) error {
	inputs, err := env.parseInputs(ctx)
	if err != nil {
		return err
	}
	failed := reportErrors(env.stderr, inputs)

	for _, in := range inputs {
		for _, found := range color.Collect(in.Result.Rules) {
			r, g, b, a := color.RGBA255(found.Color)
			_, _ = fmt.Fprintf(env.stdout, "%s: %s { %s: %s } rgba(%d, %d, %d, %d)\n",
				in.Label, found.Selector, found.Property, found.Value, r, g, b, a)
		}
	}
	if failed > 0 {
		return errFailed
	}
	return nil
}

func minify(label, source string) (string, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:           api.LoaderCSS,
		Sourcefile:       label,
		MinifyWhitespace: true,
		MinifySyntax:     true,
	})
	if len(result.Errors) > 0 {
		messages := api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
		return "", fmt.Errorf("failed to minify %s:\n%s", label, strings.Join(messages, ""))
	}
	return string(result.Code), nil
}

// diffLines renders a line diff of before and after, or nothing when they
// are equal
func diffLines(label, before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n+++ %s (formatted)\n", label, label)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for line := range strings.SplitAfterSeq(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}
