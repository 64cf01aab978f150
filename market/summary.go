package market

import (
	"errors"

	"github.com/montanaflynn/stats"
)

// Summary describes a series at a glance.
type Summary struct {
	Bars        int
	FirstClose  float64
	LastClose   float64
	MinLow      float64
	MaxHigh     float64
	MeanClose   float64
	ChangeStdev float64 // stddev of close-to-close changes
	TotalVolume float64
}

// Summarize computes a Summary. It needs at least one bar.
func Summarize(s Series) (Summary, error) {
	if len(s) == 0 {
		return Summary{}, errors.New("summarize: empty series")
	}

	closes := stats.Float64Data(s.Closes())
	lows := make(stats.Float64Data, len(s))
	highs := make(stats.Float64Data, len(s))
	vols := make(stats.Float64Data, len(s))
	for i, b := range s {
		lows[i] = b.Low
		highs[i] = b.High
		vols[i] = b.Volume
	}

	sum := Summary{
		Bars:       len(s),
		FirstClose: s[0].Close,
		LastClose:  s[len(s)-1].Close,
	}

	var err error
	if sum.MinLow, err = lows.Min(); err != nil {
		return Summary{}, err
	}
	if sum.MaxHigh, err = highs.Max(); err != nil {
		return Summary{}, err
	}
	if sum.MeanClose, err = closes.Mean(); err != nil {
		return Summary{}, err
	}
	if sum.TotalVolume, err = vols.Sum(); err != nil {
		return Summary{}, err
	}

	// a single bar has no changes; leave the stddev at zero
	if len(closes) > 1 {
		changes := make(stats.Float64Data, len(closes)-1)
		for i := 1; i < len(closes); i++ {
			changes[i-1] = closes[i] - closes[i-1]
		}
		if sum.ChangeStdev, err = changes.StandardDeviation(); err != nil {
			return Summary{}, err
		}
	}
	return sum, nil
}
