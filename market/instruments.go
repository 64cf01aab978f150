// market/instruments.go
package market

import (
	"sort"
	"time"
)

// DefaultSeed is the seed every preset uses unless configured otherwise.
const DefaultSeed = 12345

// DefaultStart is where the preset series begin.
var DefaultStart = time.Date(2023, 1, 1, 9, 30, 0, 0, time.UTC)

type InstrumentMeta struct {
	Symbol      string
	Description string
	StartPrice  float64
	Volatility  float64
	Bars        int
	Start       time.Time
	Seed        int64
}

// Params returns the generator parameters for the instrument.
func (m InstrumentMeta) Params() GenParams {
	return GenParams{
		StartPrice: m.StartPrice,
		Volatility: m.Volatility,
		Count:      m.Bars,
		Start:      m.Start,
		Seed:       m.Seed,
	}
}

// Instruments holds the built-in presets keyed by symbol.
var Instruments = map[string]InstrumentMeta{
	"ES": {
		Symbol:      "ES",
		Description: "S&P 500 E-mini",
		StartPrice:  4500,
		Volatility:  2,
		Bars:        1000,
		Start:       DefaultStart,
		Seed:        DefaultSeed,
	},
	"XAU": {
		Symbol:      "XAU",
		Description: "XAU/USD (Gold)",
		StartPrice:  2000,
		Volatility:  1,
		Bars:        1000,
		Start:       DefaultStart,
		Seed:        DefaultSeed,
	},
}

// Symbols returns the preset symbols in sorted order.
func Symbols() []string {
	out := make([]string, 0, len(Instruments))
	for s := range Instruments {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
