package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cex-withdraw-go/internal/common"
	"cex-withdraw-go/internal/config"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// writeIfMissing creates path with content and leaves an existing file untouched
func writeIfMissing(path string, content []byte, perm os.FileMode) (bool, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			zap.L().Info("File already exists, leaving it unchanged", zap.String("file", path))
			return false, nil
		}
		return false, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	zap.L().Info("Created file", zap.String("file", path))
	return true, nil
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	template, err := config.SettingsTemplate()
	if err != nil {
		return fmt.Errorf("failed to render config template: %w", err)
	}

	// credentials file is readable by the owner only
	created, err := writeIfMissing(cfg.Paths.ConfigFile, template, 0o600)
	if err != nil {
		zap.L().Error("Failed to write config file", zap.Error(err))
		return err
	}
	if created {
		fmt.Printf("Created %s. Replace the placeholder credentials for the venues you use.\n", cfg.Paths.ConfigFile)
	}

	created, err = writeIfMissing(cfg.Paths.WalletsFile, nil, 0o644)
	if err != nil {
		zap.L().Error("Failed to write wallets file", zap.Error(err))
		return err
	}
	if created {
		fmt.Printf("Created %s. Add one destination address per line.\n", cfg.Paths.WalletsFile)
	}

	if c.Bool("init") {
		zap.L().Info("Setting up SQLite journal", zap.String("path", cfg.Database.Path))
		dbService, err := common.InitializeDatabaseOnly(c.Context, cfg)
		if err != nil {
			zap.L().Error("Failed to initialize database", zap.Error(err))
			return err
		}
		dbService.Close()
	}

	zap.L().Info("Setup complete")
	return nil
}

func main() {
	app := &cli.App{
		Name:  "setup",
		Usage: "create a placeholder config file and an empty wallets file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "init",
				Usage: "also create the withdrawal journal database",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
