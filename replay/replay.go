package replay

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rustyeddy/playground/ledger"
	"github.com/rustyeddy/playground/playground"
)

// Result summarises a replay run.
type Result struct {
	Rows     int
	Orders   int
	Rejected int
	Bars     int // bars revealed by NEXT
}

// Options controls how replay behaves.
type Options struct {
	// If true, orders the ledger rejects are counted in Result.Rejected
	// and the replay continues. Otherwise the first rejection stops it.
	SkipRejected bool
}

// File replays the event script at path against s.
func File(ctx context.Context, path string, s *playground.Session, opts Options) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return Run(ctx, f, s, opts)
}

// Run drives a session from CSV events, one per row:
//
//	action,arg
//
// Actions (case-insensitive):
//
//	SELECT: arg=symbol
//	NEXT:   arg=bars to reveal (default 1)
//	BUY:    arg=size
//	SELL:   arg=size
//	CLOSE:  arg=symbol (optional, selected symbol by default)
//	RESET:  no arg
//
// An optional "action" header row, blank rows and rows starting with #
// are skipped.
func Run(ctx context.Context, r io.Reader, s *playground.Session, opts Options) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var res Result
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(row[0]), "action") {
				continue
			}
		}

		res.Rows++
		if err := handleRow(s, row, &res, opts); err != nil {
			line, _ := cr.FieldPos(0)
			return res, fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func handleRow(s *playground.Session, row []string, res *Result, opts Options) error {
	action := strings.ToUpper(strings.TrimSpace(row[0]))
	arg := ""
	if len(row) > 1 {
		arg = strings.TrimSpace(row[1])
	}

	switch action {
	case "SELECT":
		if arg == "" {
			return fmt.Errorf("SELECT needs a symbol")
		}
		return s.Select(arg)

	case "NEXT":
		n := 1
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 1 {
				return fmt.Errorf("bad NEXT count %q", arg)
			}
			n = v
		}
		res.Bars += s.Advance(n)
		return nil

	case "RESET":
		s.Reset()
		return nil

	case "BUY", "SELL":
		side, _ := ledger.ParseSide(action)
		size, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad %s size %q: %w", action, arg, err)
		}
		return record(res, opts, func() error {
			_, err := s.Place(side, size)
			return err
		})

	case "CLOSE":
		return record(res, opts, func() error {
			_, err := s.Close(arg)
			return err
		})
	}
	return fmt.Errorf("unknown action %q", row[0])
}

func record(res *Result, opts Options, place func() error) error {
	err := place()
	switch {
	case err == nil:
		res.Orders++
		return nil
	case opts.SkipRejected && errors.Is(err, ledger.ErrInvalidOrder):
		res.Rejected++
		return nil
	}
	return err
}
