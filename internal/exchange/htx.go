package exchange

func init() {
	Register(Profile{
		Id:          "htx",
		DisplayName: "Htx",
		Rank:        8,
		// HTX omits the flag for suspended chains
		Networks: genericNetworks(networkRules{
			enabled: func(_ string, n Network) bool { return boolValue(n.Withdraw) },
		}),
	})
}
