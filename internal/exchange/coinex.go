package exchange

import "cex-withdraw-go/internal/models"

func init() {
	Register(Profile{
		Id:                 "coinex",
		DisplayName:        "Coinex",
		Rank:               9,
		IncludeFeeInParams: true,
		Networks:           coinexNetworks,
	})
}

func coinexNetworks(c *Currency) map[string]models.ChainInfo {
	chains := make(map[string]models.ChainInfo)
	for _, ch := range c.Info.Chains {
		if ch.Chain == "" || !ch.WithdrawEnabled {
			continue
		}
		chains[ch.Chain] = models.ChainInfo{
			ChainId:        ch.Chain,
			WithdrawEnable: true,
			WithdrawFee:    ch.WithdrawalFee.Decimal,
			WithdrawMin:    ch.MinWithdrawAmount.Decimal,
		}
	}
	return chains
}
