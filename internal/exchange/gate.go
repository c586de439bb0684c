package exchange

func init() {
	Register(Profile{
		Id:          "gate",
		DisplayName: "Gate",
		Rank:        6,
	})
}
