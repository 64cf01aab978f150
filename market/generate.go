package market

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// BarInterval is the spacing between generated bars.
const BarInterval = 5 * time.Minute

// maxVolume scales the volume draw.
const maxVolume = 1000

// ErrInvalidConfig is returned when generator parameters are out of range.
var ErrInvalidConfig = errors.New("invalid generator config")

// GenParams fully determines a generated series.
type GenParams struct {
	StartPrice float64
	Volatility float64
	Count      int
	Start      time.Time
	Seed       int64
}

// Validate checks the parameters without generating anything.
func (p GenParams) Validate() error {
	switch {
	case math.IsNaN(p.StartPrice) || math.IsInf(p.StartPrice, 0) || p.StartPrice <= 0:
		return fmt.Errorf("%w: start price must be positive, got %v", ErrInvalidConfig, p.StartPrice)
	case math.IsNaN(p.Volatility) || math.IsInf(p.Volatility, 0) || p.Volatility < 0:
		return fmt.Errorf("%w: volatility must be >= 0, got %v", ErrInvalidConfig, p.Volatility)
	case p.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, p.Count)
	}
	return nil
}

// Generate produces p.Count bars as a seeded random walk. The first bar is
// stamped one interval after p.Start. The draw order per bar is fixed
// (change, high offset, low offset, volume) and must not change, or every
// previously generated series changes with it.
func Generate(p GenParams) (Series, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rnd := NewRand(p.Seed)
	bars := make(Series, 0, p.Count)

	price := p.StartPrice
	ts := p.Start
	for i := 0; i < p.Count; i++ {
		ts = ts.Add(BarInterval)

		// explicit float64 conversions stop the compiler fusing the
		// multiply-adds on arm64, which would change the low bits
		change := float64((rnd.Next() - 0.5) * p.Volatility)
		open := price
		closePx := open + change
		high := max(open, closePx) + float64(rnd.Next()*p.Volatility*0.5)
		low := min(open, closePx) - float64(rnd.Next()*p.Volatility*0.5)

		bars = append(bars, Bar{
			Timestamp: ts.UnixMilli(),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePx,
			Volume:    rnd.Next() * maxVolume,
		})
		price = closePx
	}
	return bars, nil
}
