package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/cardservice"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/history"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/mcpserver"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/share"
	pkgconfig "github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := os.Stat(configPath); os.IsNotExist(err) && !cmd.IsSet("config") {
		// No config file and none requested: run on defaults.
		return cfg, nil
	}
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("mcp") {
		return runMCP(cfg)
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// runMCP serves the card tools over stdio instead of starting the HTTP
// server. Logs go to stderr so stdout stays clean for the protocol.
func runMCP(cfg *internal.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("init history: %w", err)
	}
	defer db.Close()

	svc := cardservice.New(db, nil, cfg.Variants.BatchSize)
	codec := share.NewCodec(cfg.Share.BaseURL, cfg.Share.MaxURLLength)

	return mcpserver.New(svc, codec).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:   "buzzword-bingo",
		Usage:  "Bingo card generator with shareable play links, printable variants, and live progress events",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "mcp",
				Usage: "Serve MCP tools over stdio instead of starting the HTTP server",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
