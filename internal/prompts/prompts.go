package prompts

import (
	"strings"

	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

// Named sources the model is told to consult, per entity type.
var (
	StockSources      = []string{"moneycontrol.com", "nseindia.com", "bseindia.com", "screener.in"}
	MutualFundSources = []string{"moneycontrol.com", "morningstar.in", "valueresearchonline.com", "amfiindia.com"}
	IPOSources        = []string{"moneycontrol.com", "chittorgarh.com", "nseindia.com", "bseindia.com"}
	SnapshotSources   = []string{"nseindia.com", "bseindia.com", "moneycontrol.com"}
)

func render(tpl string, vars ...string) string {
	return strings.NewReplacer(vars...).Replace(tpl)
}

func sourceList(sources []string) string {
	return strings.Join(sources, ", ")
}

// Stock builds the prompt for a single listed company.
func Stock(symbol string) Prompt {
	return Prompt{System: System, User: render(stockTemplate,
		"{{id}}", symbol,
		"{{sources}}", sourceList(StockSources),
	)}
}

// MutualFund builds the prompt for a single mutual fund scheme.
func MutualFund(code string) Prompt {
	return Prompt{System: System, User: render(mutualFundTemplate,
		"{{id}}", code,
		"{{sources}}", sourceList(MutualFundSources),
	)}
}

// IPO builds the prompt for a single IPO identified by name or id.
func IPO(id string) Prompt {
	return Prompt{System: System, User: render(ipoTemplate,
		"{{id}}", id,
		"{{sources}}", sourceList(IPOSources),
	)}
}

// IPOList builds the prompt for one of the IPO list views.
func IPOList(category model.IPOCategory) Prompt {
	var scope string
	switch category {
	case model.IPOUpcoming:
		scope = "upcoming IPOs in India that are scheduled to open in the near future. Dates, price band and lot size may not be announced yet; use null for those"
	case model.IPOPast:
		scope = "IPOs in India that listed in the past 3 to 6 months, including listing date, listing gain and subscription figures"
	default:
		scope = "IPOs in India that are open for subscription today"
	}

	return Prompt{System: System, User: render(ipoListTemplate,
		"{{scope}}", scope,
		"{{sources}}", sourceList(IPOSources),
	)}
}

// MarketSnapshot builds the prompt for the singleton market overview.
func MarketSnapshot() Prompt {
	return Prompt{System: System, User: render(snapshotTemplate,
		"{{sources}}", sourceList(SnapshotSources),
	)}
}
