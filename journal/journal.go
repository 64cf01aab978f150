// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/playground/ledger"
)

// OrderRecord is one filled order as written to the audit trail.
type OrderRecord struct {
	SessionID string    `csv:"session_id"`
	OrderID   string    `csv:"order_id"`
	Symbol    string    `csv:"symbol"`
	Side      string    `csv:"side"`
	Type      string    `csv:"type"`
	Size      float64   `csv:"size"`
	Price     float64   `csv:"price"`
	Time      time.Time `csv:"time"`
	Status    string    `csv:"status"`
}

// PositionSnapshot is the state of a symbol's position right after an
// order. Open is false when the order flattened the symbol.
type PositionSnapshot struct {
	SessionID  string    `csv:"session_id"`
	OrderID    string    `csv:"order_id"`
	Symbol     string    `csv:"symbol"`
	Side       string    `csv:"side"`
	Size       float64   `csv:"size"`
	EntryPrice float64   `csv:"entry_price"`
	Time       time.Time `csv:"time"`
	Open       bool      `csv:"open"`
}

type Journal interface {
	RecordOrder(OrderRecord) error
	RecordPosition(PositionSnapshot) error
	Close() error
}

// NewOrderRecord converts a ledger order.
func NewOrderRecord(sessionID string, o ledger.Order) OrderRecord {
	return OrderRecord{
		SessionID: sessionID,
		OrderID:   o.ID,
		Symbol:    o.Symbol,
		Side:      string(o.Side),
		Type:      string(o.Type),
		Size:      o.Size,
		Price:     o.Price,
		Time:      o.Time.UTC(),
		Status:    string(o.Status),
	}
}

// NewPositionSnapshot records the position for o.Symbol in book after o
// was applied.
func NewPositionSnapshot(sessionID string, o ledger.Order, book ledger.Book) PositionSnapshot {
	snap := PositionSnapshot{
		SessionID: sessionID,
		OrderID:   o.ID,
		Symbol:    o.Symbol,
		Time:      o.Time.UTC(),
	}
	if p, ok := book.Get(o.Symbol); ok {
		snap.Side = string(p.Side)
		snap.Size = p.Size
		snap.EntryPrice = p.EntryPrice
		snap.Open = true
	}
	return snap
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordOrder(OrderRecord) error         { return nil }
func (Nop) RecordPosition(PositionSnapshot) error { return nil }
func (Nop) Close() error                          { return nil }
