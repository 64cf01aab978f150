package market

import "time"

// Bar is one OHLCV sample over a fixed interval. Timestamp is Unix
// milliseconds, the unit chart front-ends expect.
type Bar struct {
	Timestamp int64   `json:"timestamp" csv:"timestamp"`
	Open      float64 `json:"open" csv:"open"`
	High      float64 `json:"high" csv:"high"`
	Low       float64 `json:"low" csv:"low"`
	Close     float64 `json:"close" csv:"close"`
	Volume    float64 `json:"volume,omitempty" csv:"volume"`
}

// Time returns the bar timestamp as a UTC time.
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}

// Valid reports whether the high/low bracket both open and close.
func (b Bar) Valid() bool {
	return b.Low <= min(b.Open, b.Close) && b.High >= max(b.Open, b.Close)
}
