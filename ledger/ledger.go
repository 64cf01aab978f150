package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rustyeddy/playground/internal/id"
)

// ErrInvalidOrder is returned for order requests the ledger refuses.
var ErrInvalidOrder = errors.New("invalid order")

// Validate checks an order request before it touches any position.
func (r OrderRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Symbol) == "":
		return fmt.Errorf("%w: symbol is required", ErrInvalidOrder)
	case !r.Side.valid():
		return fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, r.Side)
	case r.Type != "" && r.Type != Market:
		return fmt.Errorf("%w: only market orders are supported, got %s", ErrInvalidOrder, r.Type)
	case !positive(r.Size):
		return fmt.Errorf("%w: size must be positive, got %v", ErrInvalidOrder, r.Size)
	case !positive(r.Price):
		return fmt.Errorf("%w: price must be positive, got %v", ErrInvalidOrder, r.Price)
	}
	return nil
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Apply fills req in full at req.Price and returns the next book together
// with the order record. book is never modified; on error it is returned
// unchanged.
func Apply(book Book, req OrderRequest, orderID string) (Book, Order, error) {
	if err := req.Validate(); err != nil {
		return book, Order{}, err
	}

	order := Order{
		ID:     orderID,
		Symbol: req.Symbol,
		Side:   req.Side,
		Type:   Market,
		Size:   req.Size,
		Price:  req.Price,
		Time:   req.Time,
		Status: Filled,
	}

	next := book.Clone()
	cur, ok := next[req.Symbol]
	switch {
	case !ok:
		next[req.Symbol] = Position{
			Symbol:     req.Symbol,
			Side:       sideFor(req.Side),
			Size:       req.Size,
			EntryPrice: req.Price,
		}

	case cur.Side == sideFor(req.Side):
		size := cur.Size + req.Size
		cur.EntryPrice = (cur.Size*cur.EntryPrice + req.Size*req.Price) / size
		cur.Size = size
		next[req.Symbol] = cur

	case cur.Size > req.Size:
		// partial close: entry price and side are kept
		cur.Size -= req.Size
		next[req.Symbol] = cur

	case cur.Size == req.Size:
		delete(next, req.Symbol)

	default:
		// flip: the remainder opens on the other side at the fill price
		next[req.Symbol] = Position{
			Symbol:     req.Symbol,
			Side:       sideFor(req.Side),
			Size:       req.Size - cur.Size,
			EntryPrice: req.Price,
		}
	}

	return next, order, nil
}

// Ledger applies orders and mints their IDs.
type Ledger struct {
	newID func(OrderRequest) string
}

type Option func(*Ledger)

// WithIDFunc replaces the order ID source.
func WithIDFunc(fn func(OrderRequest) string) Option {
	return func(l *Ledger) { l.newID = fn }
}

// New returns a Ledger that stamps orders with ULIDs taken at the order time.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		newID: func(r OrderRequest) string {
			return id.At(r.Time)
		},
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// PlaceOrder validates req and applies it to book. Rejected requests do not
// consume an ID.
func (l *Ledger) PlaceOrder(book Book, req OrderRequest) (Book, Order, error) {
	if err := req.Validate(); err != nil {
		return book, Order{}, err
	}
	return Apply(book, req, l.newID(req))
}
