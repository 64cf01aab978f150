package journal

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// CSV writes orders and position snapshots to two files, one row per
// record, flushed as they arrive.
type CSV struct {
	orders    *gocsv.SafeCSVWriter
	positions *gocsv.SafeCSVWriter
	of, pf    *os.File
}

func NewCSV(ordersPath, positionsPath string) (*CSV, error) {
	of, err := os.Create(ordersPath)
	if err != nil {
		return nil, err
	}
	pf, err := os.Create(positionsPath)
	if err != nil {
		_ = of.Close()
		return nil, err
	}

	j := &CSV{
		orders:    gocsv.NewSafeCSVWriter(csv.NewWriter(of)),
		positions: gocsv.NewSafeCSVWriter(csv.NewWriter(pf)),
		of:        of,
		pf:        pf,
	}

	// marshalling an empty slice writes just the header
	if err := gocsv.MarshalCSV(&[]OrderRecord{}, j.orders); err != nil {
		_ = j.closeFiles()
		return nil, fmt.Errorf("write orders header: %w", err)
	}
	if err := gocsv.MarshalCSV(&[]PositionSnapshot{}, j.positions); err != nil {
		_ = j.closeFiles()
		return nil, fmt.Errorf("write positions header: %w", err)
	}
	return j, nil
}

func (j *CSV) RecordOrder(o OrderRecord) error {
	return gocsv.MarshalCSVWithoutHeaders(&[]OrderRecord{o}, j.orders)
}

func (j *CSV) RecordPosition(p PositionSnapshot) error {
	return gocsv.MarshalCSVWithoutHeaders(&[]PositionSnapshot{p}, j.positions)
}

func (j *CSV) Close() error {
	j.orders.Flush()
	if err := j.orders.Error(); err != nil {
		return err
	}
	j.positions.Flush()
	if err := j.positions.Error(); err != nil {
		return err
	}
	return j.closeFiles()
}

func (j *CSV) closeFiles() error {
	if err := j.of.Close(); err != nil {
		return err
	}
	return j.pf.Close()
}
