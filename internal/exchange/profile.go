package exchange

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
)

const (
	defaultMaxDecimalPlaces = 6
	defaultNetworkParam     = "chain"

	// Sentinel sent as the withdrawal password for venues that require the field
	passwordPlaceholder = "-"
)

// NetworkExtractor turns venue currency metadata into the withdrawable chains keyed by venue network key
type NetworkExtractor func(c *Currency) map[string]models.ChainInfo

// Profile holds the compile-time facts and extraction strategies of a single venue
type Profile struct {
	Id          string
	DisplayName string
	// Rank orders venues in operator menus
	Rank int

	UsesFundingWallet   bool
	NetworkParamName    string
	IncludeFeeInParams  bool
	RequiresPassword    bool
	RequiresApiPassword bool
	MaxDecimalPlaces    int

	Networks     NetworkExtractor
	WithdrawalId func(r *WithdrawalReceipt) string
}

func (p Profile) account() AccountType {
	if p.UsesFundingWallet {
		return AccountFunding
	}
	return AccountSpot
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Profile)
)

// Register adds a venue profile. Venue files call it from init.
func Register(p Profile) {
	id := strings.ToLower(p.Id)
	if id == "" {
		panic("exchange: profile without id")
	}
	if p.NetworkParamName == "" {
		p.NetworkParamName = defaultNetworkParam
	}
	if p.MaxDecimalPlaces == 0 {
		p.MaxDecimalPlaces = defaultMaxDecimalPlaces
	}
	if p.Networks == nil {
		p.Networks = genericNetworks(networkRules{})
	}
	if p.WithdrawalId == nil {
		p.WithdrawalId = defaultWithdrawalId
	}
	p.Id = id

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[id]; dup {
		panic(fmt.Sprintf("exchange: venue %q registered twice", id))
	}
	registry[id] = p
}

// Lookup finds a venue profile by case-insensitive id
func Lookup(venueId string) (Profile, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[strings.ToLower(strings.TrimSpace(venueId))]
	return p, ok
}

// Venues returns every registered profile in menu order
func Venues() []Profile {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Profile, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Id < out[j].Id
	})
	return out
}

// networkRules are the per-venue deltas applied on top of the unified networks map.
// Nil fields fall back to the defaults below.
type networkRules struct {
	enabled func(key string, n Network) bool
	chainId func(key string, n Network) string
	fee     func(n Network) decimal.Decimal
	minimum func(n Network) decimal.Decimal
}

func defaultEnabled(_ string, n Network) bool {
	if n.Withdraw == nil {
		return true
	}
	return *n.Withdraw
}

func defaultChainId(key string, n Network) string {
	if n.Id != "" {
		return n.Id
	}
	return key
}

func defaultFee(n Network) decimal.Decimal {
	return n.Fee.Decimal
}

func defaultMinimum(n Network) decimal.Decimal {
	return n.Limits.Withdraw.Min.Decimal
}

func genericNetworks(rules networkRules) NetworkExtractor {
	if rules.enabled == nil {
		rules.enabled = defaultEnabled
	}
	if rules.chainId == nil {
		rules.chainId = defaultChainId
	}
	if rules.fee == nil {
		rules.fee = defaultFee
	}
	if rules.minimum == nil {
		rules.minimum = defaultMinimum
	}

	return func(c *Currency) map[string]models.ChainInfo {
		chains := make(map[string]models.ChainInfo)
		for key, n := range c.Networks {
			if !rules.enabled(key, n) {
				continue
			}
			chains[key] = models.ChainInfo{
				ChainId:        rules.chainId(key, n),
				WithdrawEnable: true,
				WithdrawFee:    rules.fee(n),
				WithdrawMin:    rules.minimum(n),
			}
		}
		return chains
	}
}

func defaultWithdrawalId(r *WithdrawalReceipt) string {
	if r.Id != "" {
		return r.Id
	}
	return r.Info.WdId
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
