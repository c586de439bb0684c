package wallet

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// LoadFile reads one address per line, trimming whitespace and skipping blank lines.
// A file with no addresses returns ErrNoWallets.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		zap.L().Error("Unable to open wallets file", zap.String("file", path), zap.Error(err))
		return nil, fmt.Errorf("unable to open wallets file: %w", err)
	}
	defer f.Close()

	var wallets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		wallets = append(wallets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read wallets file: %w", err)
	}

	if len(wallets) == 0 {
		zap.L().Error("Wallets file is empty", zap.String("file", path))
		return nil, fmt.Errorf("%s: %w", path, ErrNoWallets)
	}

	zap.L().Info("Wallets loaded", zap.String("file", path), zap.Int("count", len(wallets)))
	return wallets, nil
}
