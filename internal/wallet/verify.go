package wallet

import (
	"bytes"
	"crypto/sha256"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

const (
	tronAddressLength = 25
	tronPrefix        = 0x41
	solanaKeyLength   = 32
)

// EncodingIssue is an address that matches its family's pattern but fails the family's encoding check
type EncodingIssue struct {
	Line    int
	Address string
	Reason  string
}

// VerifyEncodings checks addresses of the resolved type beyond pattern matching:
// EIP-55 checksums for mixed-case EVM addresses, base58check for Tron and
// 32-byte public keys for Solana. Other types are not checked.
func VerifyEncodings(addresses []string, walletType WalletType) []EncodingIssue {
	var check func(string) string
	switch walletType {
	case EVM:
		check = checkEVM
	case Tron:
		check = checkTron
	case Solana:
		check = checkSolana
	default:
		return nil
	}

	var issues []EncodingIssue
	for i, a := range addresses {
		a = strings.TrimSpace(a)
		if Detect(a) != walletType {
			continue
		}
		if reason := check(a); reason != "" {
			issues = append(issues, EncodingIssue{Line: i + 1, Address: a, Reason: reason})
		}
	}
	return issues
}

func checkEVM(address string) string {
	if !common.IsHexAddress(address) {
		return "not a hex address"
	}
	body := address[2:]
	if strings.ToLower(body) == body || strings.ToUpper(body) == body {
		return ""
	}
	if common.HexToAddress(address).Hex() != address {
		return "EIP-55 checksum mismatch"
	}
	return ""
}

func checkTron(address string) string {
	raw, err := base58.Decode(address)
	if err != nil {
		return "invalid base58"
	}
	if len(raw) != tronAddressLength {
		return "unexpected decoded length"
	}
	if raw[0] != tronPrefix {
		return "unexpected address prefix"
	}
	payload, sum := raw[:21], raw[21:]
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	if !bytes.Equal(second[:4], sum) {
		return "base58check checksum mismatch"
	}
	return ""
}

func checkSolana(address string) string {
	raw, err := base58.Decode(address)
	if err != nil {
		return "invalid base58"
	}
	if len(raw) != solanaKeyLength {
		return "public key is not 32 bytes"
	}
	return ""
}
