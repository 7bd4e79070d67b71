package main

import (
	"flag"
	"fmt"
	"os"

	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/version"
	"bennypowers.dev/csstree/lsp"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information and exit")
	debug := flag.Bool("debug", false, "log protocol traffic and handler timing")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetFullVersion())
		return
	}
	if *debug {
		log.SetLevel(log.LevelDebug)
	}

	server, err := lsp.NewServer()
	if err != nil {
		log.Error("Failed to create LSP server: %v", err)
		os.Exit(1)
	}
	defer func() { _ = server.Close() }()

	// Editors talk to us over stdio
	if err := server.RunStdio(); err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}
}
