// Command ottoshelf is a terminal shelf over a remote recipe collection.
//
// Usage:
//
//	ottoshelf [-config file.yaml] [-api-url URL] [-verbose] [-quiet] [-log-file path] [-timeout 10s]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hammamikhairi/ottoshelf/internal/config"
	"github.com/hammamikhairi/ottoshelf/internal/conversation"
	"github.com/hammamikhairi/ottoshelf/internal/display"
	"github.com/hammamikhairi/ottoshelf/internal/engine"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
	"github.com/hammamikhairi/ottoshelf/internal/remote"
)

type flags struct {
	configPath string
	apiURL     string
	verbose    bool
	quiet      bool
	logFile    string
	timeout    time.Duration
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "optional YAML config file")
	flag.StringVar(&f.apiURL, "api-url", "", "recipe collection endpoint (overrides config and "+config.EnvAPIURL+")")
	flag.BoolVar(&f.verbose, "verbose", false, "log debug output")
	flag.BoolVar(&f.quiet, "quiet", false, "disable logging")
	flag.StringVar(&f.logFile, "log-file", "", "log destination (\"stderr\" for the console)")
	flag.DurationVar(&f.timeout, "timeout", -1, "per-request HTTP timeout, 0 for none (default from config)")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ottoshelf: %v\n", err)
		os.Exit(1)
	}

	log, closeLog := newLogger(cfg, f)
	defer closeLog()

	// Cancelled when the UI quits; in-flight requests end with it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := remote.NewClient(cfg.APIURL, log,
		remote.WithHTTPTimeout(cfg.HTTPTimeout),
		remote.WithUserAgent(cfg.UserAgent),
	)
	ui := display.NewUI()
	app := newApp(
		engine.New(client, log),
		conversation.NewKeywordParser(log),
		conversation.NewCLINotifier(log, ui.PrintChat, ui.PrintUrgent),
		ui,
		log,
	)

	log.Info("ottoshelf starting (api=%s, timeout=%s)", client.Base(), cfg.HTTPTimeout)
	fmt.Print(display.RenderBanner("", "Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Blocks until the UI exits.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
	log.Info("ottoshelf stopped")
}

// loadConfig layers flags over the file and environment settings.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.apiURL != "" {
		cfg.APIURL = f.apiURL
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	if f.timeout >= 0 {
		cfg.HTTPTimeout = f.timeout
	}
	return cfg, cfg.Validate()
}

// newLogger builds the logger. -verbose and -quiet beat the configured
// level. The returned func flushes and closes the log file.
func newLogger(cfg config.Config, f flags) (*logger.Logger, func()) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ottoshelf: %v, using normal\n", err)
	}
	switch {
	case f.quiet:
		level = logger.LevelOff
	case f.verbose:
		level = logger.LevelVerbose
	}

	out, closeOut := openLogOutput(cfg)
	log := logger.New(level, out)
	return log, func() {
		log.Sync()
		closeOut()
	}
}

// openLogOutput opens the configured log file, creating its directory.
// The prompt owns the terminal, so stderr is only used when asked for or
// when the file cannot be opened.
func openLogOutput(cfg config.Config) (io.Writer, func()) {
	if cfg.LogToStderr() {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ottoshelf: log file %s: %v, logging to stderr\n", cfg.LogFile, err)
		return os.Stderr, func() {}
	}
	return file, func() { file.Close() }
}
