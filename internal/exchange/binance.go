package exchange

import "github.com/shopspring/decimal"

func init() {
	Register(Profile{
		Id:                 "binance",
		DisplayName:        "Binance",
		Rank:               1,
		NetworkParamName:   "network",
		IncludeFeeInParams: true,
		Networks: genericNetworks(networkRules{
			enabled: func(_ string, n Network) bool { return boolValue(n.Info.WithdrawEnable) },
			fee:     func(n Network) decimal.Decimal { return n.Info.WithdrawFee.Decimal },
		}),
	})
}
