package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/tstetson/fieldtuner/internal"
	pkgconfig "github.com/tstetson/fieldtuner/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		// The defaults are complete; a missing config file is not fatal.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

func appOptions(cmd *cli.Command, cfg *internal.Config) []internal.Option {
	opts := []internal.Option{internal.WithConfig(cfg)}
	if p := cmd.String("profile"); p != "" {
		opts = append(opts, internal.WithProfilePath(p))
	}
	return opts
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, appOptions(cmd, cfg)...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, appOptions(cmd, cfg)...); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
	profileFlag := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "Path to the PROFSAVE_profile file (overrides config and auto-detection)",
		Sources: cli.EnvVars("APP_PROFILE_PATH"),
	}

	cmd := &cli.Command{
		Name:   "fieldtuner",
		Usage:  "Safe editor for Battlefield profile settings with validation, atomic commits, and verified backups",
		Action: serve,
		Flags:  []cli.Flag{configFlag, profileFlag},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API and profile watcher (default)",
				Action: serve,
				Flags:  []cli.Flag{configFlag, profileFlag},
			},
			{
				Name:   "mcp",
				Usage:  "Serve FieldTuner tools over MCP stdio for LLM clients",
				Action: mcp,
				Flags:  []cli.Flag{configFlag, profileFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
