package exchange

func init() {
	Register(Profile{
		Id:                  "okx",
		DisplayName:         "Okx",
		Rank:                3,
		UsesFundingWallet:   true,
		IncludeFeeInParams:  true,
		RequiresApiPassword: true,
		Networks: genericNetworks(networkRules{
			enabled: func(_ string, n Network) bool { return boolValue(n.Info.CanWithdraw) },
			chainId: func(_ string, n Network) string { return n.Id },
		}),
	})
}
