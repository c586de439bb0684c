package wallet

import "regexp"

// WalletType is the address family a wallet list belongs to
type WalletType int

const (
	Unknown WalletType = iota
	EVM
	Solana
	Tron
	Bitcoin
	Ripple
	Stellar
	TON
	Cosmos
	Polkadot
	Cardano
)

var typeNames = map[WalletType]string{
	Unknown:  "Unknown",
	EVM:      "EVM (Ethereum, BSC, Polygon, etc.)",
	Solana:   "Solana",
	Tron:     "Tron",
	Bitcoin:  "Bitcoin",
	Ripple:   "Ripple (XRP)",
	Stellar:  "Stellar (XLM)",
	TON:      "TON",
	Cosmos:   "Cosmos",
	Polkadot: "Polkadot",
	Cardano:  "Cardano",
}

func (t WalletType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return typeNames[Unknown]
}

type pattern struct {
	walletType WalletType
	re         *regexp.Regexp
}

// patterns are matched in order; the first match wins
var patterns = []pattern{
	{EVM, regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)},
	{Solana, regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{43,44}$`)},
	{Tron, regexp.MustCompile(`^T[A-Za-z0-9]{33}$`)},
	{Bitcoin, regexp.MustCompile(`^(bc1|[13])[a-zA-HJ-NP-Z0-9]{25,39}$`)},
	{Ripple, regexp.MustCompile(`^r[0-9a-zA-Z]{24,34}$`)},
	{Stellar, regexp.MustCompile(`^G[A-Z0-9]{55}$`)},
	{TON, regexp.MustCompile(`^(UQ|EQ)[a-zA-Z0-9_-]{46}$`)},
	{Cosmos, regexp.MustCompile(`^cosmos[0-9a-z]{38,42}$`)},
	{Polkadot, regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{47,48}$`)},
	{Cardano, regexp.MustCompile(`^addr1[a-zA-Z0-9]{30,120}$`)},
}

// Detect returns the first wallet type whose pattern matches the trimmed address
func Detect(address string) WalletType {
	for _, p := range patterns {
		if p.re.MatchString(address) {
			return p.walletType
		}
	}
	return Unknown
}
