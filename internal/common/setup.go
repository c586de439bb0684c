package common

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"cex-withdraw-go/internal/config"
	"cex-withdraw-go/internal/database"
	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/gateway"
	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
	}
}

type Services struct {
	Journal  store.Journal
	Factory  *exchange.Factory
	Settings models.Settings
}

// InitializeLogger installs a global logger writing colored console output
// and JSON lines to a rotating log file
func InitializeLogger(cfg models.LogConfig) (*zap.Logger, func()) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		log.Printf("Unknown log level %q, using info\n", cfg.Level)
		level = zapcore.InfoLevel
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleConfig.EncodeTime = zapcore.TimeEncoderOfLayout("02.01 15:04:05")

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.Lock(os.Stdout), level),
	}

	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
		if file != nil {
			if err := file.Close(); err != nil {
				log.Printf("Failed to close log file: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices loads venue credentials, opens the journal when enabled
// and builds the venue factory on top of the gateway client
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	settings, err := loadSettings(cfg)
	if err != nil {
		return nil, err
	}

	services := &Services{
		Factory:  exchange.NewFactory(gateway.NewConstructor(cfg.Gateway)),
		Settings: settings,
	}

	if cfg.Database.Enabled {
		dbService, err := database.NewService(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		services.Journal = dbService
	} else {
		zap.L().Info("Withdrawal journal disabled (JOURNAL_ENABLED=false)")
	}

	return services, nil
}

// InitializeDatabaseOnly initializes just the journal without venue access
// Useful for read-only operations like listing past runs
func InitializeDatabaseOnly(ctx context.Context, cfg *models.Config) (*database.Service, error) {
	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	return dbService, nil
}

func (cs *Services) Close() {
	if cs.Journal != nil {
		cs.Journal.Close()
	}
}

func loadSettings(cfg *models.Config) (models.Settings, error) {
	zap.L().Info("Loading venue credentials", zap.String("file", cfg.Paths.ConfigFile))
	settings, err := config.LoadSettings(cfg.Paths.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("unable to load venue credentials: %w", err)
	}
	return settings, nil
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
