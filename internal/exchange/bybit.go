package exchange

func init() {
	Register(Profile{
		Id:                "bybit",
		DisplayName:       "Bybit",
		Rank:              5,
		UsesFundingWallet: true,
		MaxDecimalPlaces:  4,
	})
}
