package memcache

import (
	"strings"

	"github.com/ndewijer/InvestBoard-Backend/internal/model"
)

// MarketSnapshotKey is the memory key of the singleton market snapshot.
func MarketSnapshotKey() string { return "market:snapshot" }

// StockKey uppercases the symbol so "tcs" and "TCS" share a slot.
func StockKey(symbol string) string { return "stock:" + strings.ToUpper(symbol) }

func MutualFundKey(code string) string { return "mf:" + code }

func IPOKey(id string) string { return "ipo:" + id }

func IPOListKey(category model.IPOCategory) string { return "ipo:list:" + string(category) }
