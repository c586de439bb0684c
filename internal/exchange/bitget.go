package exchange

import "github.com/shopspring/decimal"

func init() {
	Register(Profile{
		Id:                  "bitget",
		DisplayName:         "Bitget",
		Rank:                4,
		NetworkParamName:    "network",
		RequiresApiPassword: true,
		Networks: genericNetworks(networkRules{
			enabled: func(_ string, n Network) bool { return n.Info.Withdrawable == "true" },
			fee:     func(n Network) decimal.Decimal { return n.Info.WithdrawFee.Decimal },
		}),
	})
}
