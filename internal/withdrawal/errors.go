package withdrawal

import "errors"

var (
	ErrNoWallets          = errors.New("no destination wallets")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoChainsAvailable  = errors.New("no withdrawal-enabled chains available")
	ErrInvalidAmountRange = errors.New("invalid amount range")
	ErrChainNotOffered    = errors.New("selected chain was not offered")
)
