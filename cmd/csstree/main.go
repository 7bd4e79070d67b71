// Command csstree parses, checks and formats CSS, including the style
// elements of HTML files and the css tagged templates of JavaScript.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"bennypowers.dev/csstree/internal/config"
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/version"
)

// Exit codes
const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	programName = "csstree"
)

// errFailed marks a run that printed its failures already
var errFailed = errors.New("failed")

type options struct {
	configPath     string
	format         string
	diff           bool
	minify         bool
	verbose        bool
	maxTokenLength int
	maxDepth       int
}

type command func(ctx context.Context, env *environment) error

var commands = map[string]command{
	"parse":  runParse,
	"check":  runCheck,
	"fmt":    runFmt,
	"colors": runColors,
}

// environment carries what every command needs
type environment struct {
	opts   options
	cfg    *config.Config
	root   string
	args   []string
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(programName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.configPath, "config", "", "configuration file (default: .csstree.yaml or package.json in the working directory)")
	flags.StringVar(&opts.format, "format", "", "output format of parse and version: yaml or json")
	flags.BoolVar(&opts.diff, "d", false, "fmt: print a diff instead of the formatted CSS")
	flags.BoolVar(&opts.minify, "minify", false, "fmt: minify the formatted CSS")
	flags.BoolVar(&opts.verbose, "v", false, "log debug messages")
	flags.IntVar(&opts.maxTokenLength, "max-token-length", 0, "maximum length of a single token")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum selector and function nesting")
	flags.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: %s [flags] <parse|check|fmt|colors|version> [patterns...]\n\nFlags:\n", programName)
		flags.PrintDefaults()
	}
	return flags
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	flags := newFlagSet(&opts, stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitUsage
	}

	// Flags may also follow the command
	name := flags.Arg(0)
	if err := flags.Parse(flags.Args()[1:]); err != nil {
		return exitUsage
	}

	if opts.verbose {
		log.SetLevel(log.LevelDebug)
	}

	if name == "version" {
		return printVersion(stdout, stderr, opts.format)
	}

	cmd, ok := commands[name]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "%s: unknown command %q\n", programName, name)
		flags.Usage()
		return exitUsage
	}

	cfg, root, err := loadConfig(opts)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitUsage
	}

	env := &environment{
		opts:   opts,
		cfg:    cfg,
		root:   root,
		args:   flags.Args(),
		stdout: stdout,
		stderr: stderr,
	}
	if err := cmd(ctx, env); err != nil {
		if !errors.Is(err, errFailed) {
			_, _ = fmt.Fprintf(stderr, "%s %s: %v\n", programName, name, err)
		}
		return exitFailed
	}
	return exitOK
}

// printVersion prints the version line, or the build information in the
// requested format
func printVersion(stdout, stderr io.Writer, format string) int {
	if format == "" {
		_, _ = fmt.Fprintln(stdout, version.GetFullVersion())
		return exitOK
	}
	if err := writeDump(stdout, format, version.GetBuildInfo()); err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitUsage
	}
	return exitOK
}

// loadConfig resolves the configuration and the directory patterns are
// relative to. Flags override the configuration file.
func loadConfig(opts options) (*config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get working directory: %w", err)
	}

	var cfg *config.Config
	if opts.configPath != "" {
		found, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, "", err
		}
		cfg = config.DefaultConfig().Merge(found)
	} else {
		cfg, err = config.Load(root)
		if err != nil {
			return nil, "", err
		}
	}

	cfg = cfg.Merge(&config.Config{
		Format:         opts.format,
		MaxTokenLength: opts.maxTokenLength,
		MaxDepth:       opts.maxDepth,
	})
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	log.Debug("Using configuration %+v", *cfg)
	return cfg, root, nil
}
