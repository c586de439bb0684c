package exchange

import "cex-withdraw-go/internal/models"

func init() {
	Register(Profile{
		Id:               "mexc",
		DisplayName:      "Mexc",
		Rank:             2,
		NetworkParamName: "netWork",
		Networks:         mexcNetworks,
	})
}

// mexcNetworks lists chains by display network name while withdrawals are addressed by netWork
func mexcNetworks(c *Currency) map[string]models.ChainInfo {
	chains := make(map[string]models.ChainInfo)
	for _, n := range c.Info.NetworkList {
		if !n.WithdrawEnable || n.NetWork == "" {
			continue
		}
		chains[n.Network] = models.ChainInfo{
			ChainId:        n.NetWork,
			WithdrawEnable: true,
			WithdrawFee:    n.WithdrawFee.Decimal,
			WithdrawMin:    n.WithdrawMin.Decimal,
		}
	}
	return chains
}
