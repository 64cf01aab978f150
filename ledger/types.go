package ledger

import (
	"fmt"
	"strings"
	"time"
)

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide accepts BUY/SELL in any case, plus LONG/SHORT aliases.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "LONG":
		return Buy, nil
	case "SELL", "SHORT":
		return Sell, nil
	}
	return "", fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, s)
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func (s Side) valid() bool { return s == Buy || s == Sell }

// PositionSide is the net direction of an open position.
type PositionSide string

const (
	Long  PositionSide = "LONG"
	Short PositionSide = "SHORT"
)

// Sign is +1 for long and -1 for short.
func (p PositionSide) Sign() float64 {
	if p == Short {
		return -1
	}
	return 1
}

// Closing returns the order side that reduces a position on this side.
func (p PositionSide) Closing() Side {
	if p == Short {
		return Buy
	}
	return Sell
}

func sideFor(s Side) PositionSide {
	if s == Sell {
		return Short
	}
	return Long
}

type OrderType string

const (
	Market OrderType = "MARKET"
	Limit  OrderType = "LIMIT"
)

type OrderStatus string

// Filled is the only status: market orders fill immediately.
const Filled OrderStatus = "FILLED"

// Order is an immutable entry in the order log.
type Order struct {
	ID     string      `json:"id"`
	Symbol string      `json:"symbol"`
	Side   Side        `json:"side"`
	Type   OrderType   `json:"type"`
	Size   float64     `json:"size"`
	Price  float64     `json:"price"`
	Time   time.Time   `json:"time"`
	Status OrderStatus `json:"status"`
}

// Timestamp returns the order time in Unix milliseconds.
func (o Order) Timestamp() int64 { return o.Time.UnixMilli() }

// Position is the single open position for a symbol. Size is always > 0.
type Position struct {
	Symbol     string       `json:"symbol"`
	Side       PositionSide `json:"side"`
	Size       float64      `json:"size"`
	EntryPrice float64      `json:"entry_price"`
}

// OrderRequest is an order intent from the host. Price is the reference
// price the order fills at, normally the close of the latest visible bar.
type OrderRequest struct {
	Symbol string
	Side   Side
	Type   OrderType // empty means Market
	Size   float64
	Price  float64
	Time   time.Time
}
