package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// fallbackSettingsPaths are tried in order when the configured file does not exist
var fallbackSettingsPaths = []string{"data/config.yaml", "config.yaml"}

type settingsFile struct {
	Settings map[string]models.Credentials `yaml:"settings"`
}

// ResolveSettingsPath returns path if it exists, otherwise the first existing fallback
func ResolveSettingsPath(path string) (string, error) {
	candidates := append([]string{path}, fallbackSettingsPaths...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: config file not found (tried %s)", exchange.ErrConfig, strings.Join(candidates, ", "))
}

// LoadSettings reads per-venue credentials from the YAML config file
func LoadSettings(path string) (models.Settings, error) {
	resolved, err := ResolveSettingsPath(path)
	if err != nil {
		zap.L().Error("Config file not found", zap.String("file", path))
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		zap.L().Error("Unable to read config file", zap.String("file", resolved), zap.Error(err))
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: config file %s is not readable: %w", exchange.ErrConfig, resolved, err)
		}
		return nil, fmt.Errorf("%w: unable to read config file %s: %w", exchange.ErrConfig, resolved, err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		zap.L().Error("Malformed config file", zap.String("file", resolved), zap.Error(err))
		return nil, fmt.Errorf("%w: malformed config file %s: %w", exchange.ErrConfig, resolved, err)
	}
	if file.Settings == nil {
		return nil, fmt.Errorf("%w: %s has no settings section", exchange.ErrConfig, resolved)
	}

	settings := make(models.Settings, len(file.Settings))
	for venue, creds := range file.Settings {
		settings[strings.ToLower(strings.TrimSpace(venue))] = creds
	}

	zap.L().Info("Config loaded", zap.String("file", resolved), zap.Int("venues", len(settings)))
	return settings, nil
}

// SettingsTemplate renders a config file with placeholder credentials for every registered venue
func SettingsTemplate() ([]byte, error) {
	file := settingsFile{Settings: make(map[string]models.Credentials)}
	for _, p := range exchange.Venues() {
		creds := models.Credentials{
			ApiKey:    exchange.PlaceholderApiKey,
			ApiSecret: exchange.PlaceholderApiSecret,
		}
		if p.RequiresApiPassword {
			creds.Password = exchange.PlaceholderApiPassword
		}
		file.Settings[p.Id] = creds
	}
	return yaml.Marshal(file)
}
