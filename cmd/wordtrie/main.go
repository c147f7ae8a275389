// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordtrie IPC server, CLI [DBG] and demo.

wordtrie stores Greek, Latin and digit words in a trie and answers exact
lookups and closest-word queries by Levenshtein distance. Case and Greek
accents are folded before storage, so "τέστ", "Τεστ" and "ΤΕΣΤ" are the
same word.

# Usage

Start the IPC server with default settings:

	wordtrie

Use a custom config file and enable debug mode:

	wordtrie -config /path/to/config.toml -d

Run in CLI mode for interactive testing with a wider threshold:

	wordtrie -c -t 3

Run the demo, which inserts two words and prints four membership checks:

	wordtrie -demo

# Configuration

Config lives in [UserConfigDir]/wordtrie/config.toml and is created with
defaults when missing. WORDTRIE_* environment variables override the file,
e.g. WORDTRIE_DICT_THRESHOLD=3.

	[dict]
	threshold = 2
	cache_size = 256

	[server]
	max_word_len = 64
	send_ready = true

	[cli]
	max_word_len = 64
	show_timing = false

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, one response per
request, and stops when stdin closes:

	{"id": "r1", "op": "insert", "w": "Τεστ"}
	{"id": "r2", "op": "closest", "w": "τεσ"}

See the server package for every op and error code.

# Command Line Flags

	-version
	    Show current version
	-config string
	    Path to a custom config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-demo
	    Run the insert/contains demo and exit
	-t int
	    Distance threshold for closest-word queries (default from config)
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow between config, dictionary and the chosen front end.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to custom config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	demoMode := flag.Bool("demo", false, "Insert two words, print four contains checks and exit")
	threshold := flag.Int("t", -1, "Distance threshold for closest-word queries (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *demoMode {
		if err := runDemo(os.Stdout, dictionary.New()); err != nil {
			log.Fatalf("Demo failed: %v", err)
		}
		return
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	if *threshold >= 0 {
		appConfig.Dict.Threshold = *threshold
	}

	dictLogger := logger.NewWithConfig("dict", log.GetLevel(), *debugMode, *debugMode, log.TextFormatter)
	dict := dictionary.NewFromConfig(appConfig.Dict, dictionary.WithLogger(dictLogger))
	log.Debug("Dictionary ready", "threshold", dict.Threshold(), "cacheSize", appConfig.Dict.CacheSize)

	// CLI is mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(dict, appConfig.CLI, dict.Threshold(), os.Stdin, logger.New(""))
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(dict, appConfig.Server, dict.Threshold())
	showStartupInfo(configPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordtrie ] Greek and Latin dictionary with closest-word search")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info on stderr; stdout carries IPC frames.
func showStartupInfo(configPath string) {
	currentLevel := log.GetLevel()
	if currentLevel > log.InfoLevel {
		return
	}
	log.Infof("%s %s", AppName, Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Info("status: ready")
}
