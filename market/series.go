package market

import "fmt"

// Series is an ordered, immutable run of bars.
type Series []Bar

func (s Series) Len() int { return len(s) }

// At returns the bar at index i and false when i is out of range.
func (s Series) At(i int) (Bar, bool) {
	if i < 0 || i >= len(s) {
		return Bar{}, false
	}
	return s[i], true
}

// Last returns the final bar.
func (s Series) Last() (Bar, bool) {
	return s.At(len(s) - 1)
}

// Window returns the first n bars (clamped to the series length). The
// returned slice is a copy so callers cannot mutate the series.
func (s Series) Window(n int) Series {
	n = max(0, min(n, len(s)))
	out := make(Series, n)
	copy(out, s[:n])
	return out
}

// Closes returns the closing prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Validate checks the OHLC bracket of every bar and that timestamps are
// strictly increasing.
func (s Series) Validate() error {
	for i, b := range s {
		if !b.Valid() {
			return fmt.Errorf("bar %d: high/low do not bracket open/close: %+v", i, b)
		}
		if i > 0 && b.Timestamp <= s[i-1].Timestamp {
			return fmt.Errorf("bar %d: timestamp %d not after %d", i, b.Timestamp, s[i-1].Timestamp)
		}
	}
	return nil
}
