package wallet

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// evmPrivateKeyLength is the hex length of an unprefixed secp256k1 private key
const evmPrivateKeyLength = 64

var ErrNoWallets = errors.New("wallet list is empty")

// Issue points at one line of the wallet list
type Issue struct {
	Line    int
	Address string
	Length  int
}

// Report is the outcome of classifying a wallet list
type Report struct {
	Type           WalletType
	StandardLength int
	// Types holds the detected type per address, in input order
	Types []WalletType
	// NonStandard lists addresses whose length differs from StandardLength
	NonStandard []Issue
	// PrivateKeys lists EVM entries that look like private keys
	PrivateKeys []Issue
}

// Valid reports whether every address has the standard length
func (r *Report) Valid() bool {
	return len(r.NonStandard) == 0
}

// Classify resolves the wallet type of a list and reports length outliers and
// EVM entries that look like private keys. Findings are warnings; the caller decides whether to continue.
func Classify(addresses []string) (*Report, error) {
	if len(addresses) == 0 {
		zap.L().Error("Wallet list is empty")
		return nil, ErrNoWallets
	}

	trimmed := make([]string, len(addresses))
	for i, a := range addresses {
		trimmed[i] = strings.TrimSpace(a)
	}

	report := &Report{StandardLength: standardLength(trimmed)}

	for i, a := range trimmed {
		if len(a) != report.StandardLength {
			report.NonStandard = append(report.NonStandard, Issue{Line: i + 1, Address: a, Length: len(a)})
		}
	}
	if len(report.NonStandard) > 0 {
		zap.L().Warn("Wallets with non-standard length found", zap.Int("standard_length", report.StandardLength))
		for _, issue := range report.NonStandard {
			zap.L().Warn("Non-standard wallet",
				zap.Int("line", issue.Line),
				zap.String("address", issue.Address),
				zap.Int("length", issue.Length))
		}
	}

	report.Types = make([]WalletType, len(trimmed))
	for i, a := range trimmed {
		report.Types[i] = Detect(a)
	}
	report.Type = resolveType(report.Types)
	zap.L().Info("Wallet type detected", zap.String("type", report.Type.String()))

	if report.Type == EVM && report.StandardLength >= evmPrivateKeyLength {
		report.PrivateKeys = privateKeyLike(trimmed)
		if len(report.PrivateKeys) > 0 {
			zap.L().Warn("Entries look like EVM private keys, not addresses. EVM addresses start with 0x and are 42 characters long")
			for _, issue := range report.PrivateKeys {
				zap.L().Warn("Possible private key", zap.Int("line", issue.Line))
			}
		}
	}

	return report, nil
}

// standardLength is the most frequent length; ties go to the length seen first
func standardLength(addresses []string) int {
	counts := make(map[int]int)
	best, bestCount := 0, 0
	for _, a := range addresses {
		counts[len(a)]++
	}
	for _, a := range addresses {
		if c := counts[len(a)]; c > bestCount {
			best, bestCount = len(a), c
		}
	}
	return best
}

// resolveType returns the single type present, ignoring Unknown when others
// exist, falling back to the plurality type (first seen wins ties)
func resolveType(types []WalletType) WalletType {
	counts := make(map[WalletType]int)
	var order []WalletType
	for _, t := range types {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	if len(order) == 1 {
		return order[0]
	}

	best, bestCount := Unknown, 0
	for _, t := range order {
		if t == Unknown {
			continue
		}
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best
}

func privateKeyLike(addresses []string) []Issue {
	var issues []Issue
	for i, a := range addresses {
		body := strings.TrimPrefix(a, "0x")
		if len(body) == evmPrivateKeyLength && isHex(body) {
			issues = append(issues, Issue{Line: i + 1, Address: a, Length: len(a)})
		}
	}
	return issues
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
