package market

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes the series with a timestamp,open,high,low,close,volume header.
func WriteCSV(w io.Writer, s Series) error {
	bars := []Bar(s)
	if err := gocsv.Marshal(&bars, w); err != nil {
		return fmt.Errorf("marshal series: %w", err)
	}
	return nil
}

// ReadCSV loads a series previously written by WriteCSV and validates it.
func ReadCSV(r io.Reader) (Series, error) {
	var bars []Bar
	if err := gocsv.Unmarshal(r, &bars); err != nil {
		return nil, fmt.Errorf("unmarshal series: %w", err)
	}
	s := Series(bars)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
