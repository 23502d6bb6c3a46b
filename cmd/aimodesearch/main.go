// Package main provides the aimodesearch MCP server. It exposes Google
// AI-mode search as an MCP tool over stdio, driving a real browser and
// falling back to a visible window when a human has to pass verification.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"aimodesearch/pkg/browser"
	appconfig "aimodesearch/pkg/config"
	"aimodesearch/pkg/logging"
	"aimodesearch/pkg/search"
	"aimodesearch/pkg/server"
)

const version = "1.0.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	Language    string
	Visible     bool
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("aimodesearch v%s\n", version)
		return
	}

	// Create context with signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Printf("Execution failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	config := &CLIConfig{}

	flag.StringVar(&config.ConfigFile, "config", "", "Path to configuration file (JSON)")
	flag.StringVar(&config.Language, "language", "", "Default interface language (e.g. zh-CN, en-US)")
	flag.BoolVar(&config.Visible, "visible", false, "Show the browser window instead of running headless")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "aimodesearch - Google AI mode search over MCP\n\n")
		fmt.Fprintf(os.Stderr, "Usage: aimodesearch [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nThe server speaks MCP on stdin/stdout; all diagnostics go to\n")
		fmt.Fprintf(os.Stderr, "a log file under ~/.aimodesearch/logs.\n")
	}

	flag.Parse()
	return config
}

// run wires the logger, configuration, browser launcher, controller and
// MCP server, then serves until ctx is cancelled.
func run(ctx context.Context, cli *CLIConfig) error {
	logger, err := logging.NewLogger("main")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	if err := appconfig.Initialize(cli.ConfigFile); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	section := appconfig.GetSearch()

	cfg := search.DefaultConfig()
	cfg.NavigationTimeout, cfg.StreamWait, cfg.SessionTimeout,
		cfg.InterventionTimeout, cfg.Cooldown = section.GetTimeouts()
	cfg.Headless = section.GetHeadless()
	cfg.DefaultLanguage = section.GetDefaultLanguage()

	// CLI flags win over the config file
	if cli.Language != "" {
		if !search.IsSupportedLanguage(cli.Language) {
			return fmt.Errorf("unsupported language %q (supported: %v)", cli.Language, search.Languages)
		}
		cfg.DefaultLanguage = cli.Language
	}
	if cli.Visible {
		cfg.Headless = false
	}

	launcher, err := browser.NewLauncher(logger, section.GetProxyOverride())
	if err != nil {
		return fmt.Errorf("failed to start browser launcher: %w", err)
	}
	defer func() {
		if err := launcher.Shutdown(); err != nil {
			logger.Warnf("launcher shutdown: %v", err)
		}
	}()

	controller := search.NewController(launcher, cfg, logger)
	defer controller.CloseSession()

	logger.Infof("aimodesearch v%s starting (language=%s headless=%t, log %s)",
		version, cfg.DefaultLanguage, cfg.Headless, logger.LogPath())

	srv := server.New(controller, logger)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
