package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/perbu/adsvideo/internal/cli"
	"github.com/perbu/adsvideo/internal/config"
	"github.com/perbu/adsvideo/internal/db"
)

//go:embed .version
var version string

// setupLogger configures the global slog logger based on debug setting
func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	var root cli.CLI
	parser := kong.Parse(&root,
		kong.Name("adsvideo"),
		kong.Description("Advertising creative agent - storyboards, video generation and ad tagging"),
		kong.UsageOnError(),
		kong.Vars{"version": strings.TrimSpace(version)},
	)

	// Load configuration
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override data dir if specified
	if root.DataDir != "" {
		cfg.DataDir = root.DataDir
	}

	// Override debug if specified via CLI flag
	if root.Debug {
		cfg.Debug = true
	}

	setupLogger(cfg.Debug)
	slog.Info("starting", "service", cfg.GetServiceName(), "version", strings.TrimSpace(version))

	// Require data directory to be specified
	if cfg.DataDir == "" {
		return fmt.Errorf("data directory must be specified via --data-dir flag or config file")
	}

	// Ensure data directory exists
	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}

	// Open database
	database, err := db.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	ctx := &cli.Context{
		DB:      database,
		Config:  cfg,
		Verbose: root.Verbose,
		Quiet:   root.Quiet,
	}

	return parser.Run(ctx)
}
