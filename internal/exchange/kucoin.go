package exchange

func init() {
	Register(Profile{
		Id:                  "kucoin",
		DisplayName:         "Kucoin",
		Rank:                7,
		UsesFundingWallet:   true,
		RequiresApiPassword: true,
		Networks:            genericNetworks(networkRules{enabled: kucoinEnabled}),
	})
}

func kucoinEnabled(_ string, n Network) bool {
	switch {
	case n.Withdraw != nil:
		return *n.Withdraw
	case n.Info.IsWithdrawEnabled != nil:
		return *n.Info.IsWithdrawEnabled
	default:
		return boolValue(n.Info.WithdrawEnable)
	}
}
