package ledger

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2023, 1, 1, 9, 35, 0, 0, time.UTC)

func seqIDs() Option {
	n := 0
	return WithIDFunc(func(OrderRequest) string {
		n++
		return fmt.Sprintf("O%d", n)
	})
}

func req(side Side, size, price float64) OrderRequest {
	return OrderRequest{Symbol: "ES", Side: side, Size: size, Price: price, Time: t0}
}

// place runs a sequence of orders on an empty book and returns the final
// book and the order log.
func place(t *testing.T, reqs ...OrderRequest) (Book, []Order) {
	t.Helper()
	l := New(seqIDs())
	book := Book{}
	var log []Order
	for _, r := range reqs {
		next, o, err := l.PlaceOrder(book, r)
		require.NoError(t, err)
		book = next
		log = append(log, o)
	}
	return book, log
}

func TestOpenPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		side Side
		want PositionSide
	}{
		{Buy, Long},
		{Sell, Short},
	}
	for _, tt := range tests {
		book, log := place(t, req(tt.side, 2, 100))
		p, ok := book.Get("ES")
		require.True(t, ok)
		assert.Equal(t, Position{Symbol: "ES", Side: tt.want, Size: 2, EntryPrice: 100}, p)
		require.Len(t, log, 1)
		assert.Equal(t, Order{
			ID: "O1", Symbol: "ES", Side: tt.side, Type: Market,
			Size: 2, Price: 100, Time: t0, Status: Filled,
		}, log[0])
	}
}

func TestWeightedAverageEntry(t *testing.T) {
	t.Parallel()

	book, log := place(t, req(Buy, 2, 100), req(Buy, 3, 110))
	p, ok := book.Get("ES")
	require.True(t, ok)
	assert.Equal(t, Long, p.Side)
	assert.Equal(t, 5.0, p.Size)
	assert.InDelta(t, 106.0, p.EntryPrice, 1e-12)
	assert.Len(t, log, 2)
}

func TestShortAddAverages(t *testing.T) {
	t.Parallel()

	book, _ := place(t, req(Sell, 1, 90), req(Sell, 1, 100))
	p, _ := book.Get("ES")
	assert.Equal(t, Short, p.Side)
	assert.Equal(t, 2.0, p.Size)
	assert.InDelta(t, 95.0, p.EntryPrice, 1e-12)
}

func TestRepeatedSmallAddsStayStable(t *testing.T) {
	t.Parallel()

	reqs := make([]OrderRequest, 0, 1000)
	for i := 0; i < 1000; i++ {
		reqs = append(reqs, req(Buy, 0.01, 100))
	}
	book, _ := place(t, reqs...)
	p, _ := book.Get("ES")
	assert.InDelta(t, 100.0, p.EntryPrice, 1e-9)
	assert.InDelta(t, 10.0, p.Size, 1e-9)
}

func TestPartialCloseKeepsEntry(t *testing.T) {
	t.Parallel()

	book, log := place(t, req(Buy, 5, 100), req(Sell, 2, 130))
	p, ok := book.Get("ES")
	require.True(t, ok)
	assert.Equal(t, Position{Symbol: "ES", Side: Long, Size: 3, EntryPrice: 100}, p)
	assert.Len(t, log, 2)
}

func TestFullCloseRemovesPosition(t *testing.T) {
	t.Parallel()

	book, log := place(t, req(Buy, 5, 100), req(Sell, 5, 120))
	_, ok := book.Get("ES")
	assert.False(t, ok)
	assert.Equal(t, 0, book.Len())
	assert.Len(t, log, 2)
	assert.Equal(t, Filled, log[1].Status)
	assert.Equal(t, 120.0, log[1].Price)
}

func TestFlipRebasesEntry(t *testing.T) {
	t.Parallel()

	book, _ := place(t, req(Buy, 5, 100), req(Sell, 8, 90))
	p, ok := book.Get("ES")
	require.True(t, ok)
	assert.Equal(t, Position{Symbol: "ES", Side: Short, Size: 3, EntryPrice: 90}, p)

	book, _ = place(t, req(Sell, 1, 50), req(Buy, 4, 55))
	p, _ = book.Get("ES")
	assert.Equal(t, Position{Symbol: "ES", Side: Long, Size: 3, EntryPrice: 55}, p)
}

func TestSymbolsAreIndependent(t *testing.T) {
	t.Parallel()

	xau := OrderRequest{Symbol: "XAU", Side: Sell, Size: 1, Price: 2000, Time: t0}
	book, _ := place(t, req(Buy, 1, 4500), xau, req(Buy, 1, 4510))

	assert.Equal(t, []string{"ES", "XAU"}, book.Symbols())
	es, _ := book.Get("ES")
	gold, _ := book.Get("XAU")
	assert.Equal(t, 2.0, es.Size)
	assert.Equal(t, Short, gold.Side)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	before := Book{"ES": {Symbol: "ES", Side: Long, Size: 5, EntryPrice: 100}}
	snapshot := before.Clone()

	for _, r := range []OrderRequest{req(Buy, 1, 101), req(Sell, 2, 99), req(Sell, 5, 99), req(Sell, 9, 99)} {
		_, _, err := Apply(before, r, "X")
		require.NoError(t, err)
		assert.Equal(t, snapshot, before)
	}
}

func TestRejection(t *testing.T) {
	t.Parallel()

	start := Book{"ES": {Symbol: "ES", Side: Long, Size: 5, EntryPrice: 100}}

	tests := []struct {
		name string
		req  OrderRequest
	}{
		{"zero_size", req(Buy, 0, 100)},
		{"negative_size", req(Sell, -1, 100)},
		{"negative_price", req(Buy, 1, -5)},
		{"zero_price", req(Buy, 1, 0)},
		{"nan_size", req(Buy, math.NaN(), 100)},
		{"inf_price", req(Buy, 1, math.Inf(1))},
		{"empty_symbol", OrderRequest{Side: Buy, Size: 1, Price: 1}},
		{"bad_side", OrderRequest{Symbol: "ES", Side: "HOLD", Size: 1, Price: 1}},
		{"limit", OrderRequest{Symbol: "ES", Side: Buy, Type: Limit, Size: 1, Price: 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			called := false
			l := New(WithIDFunc(func(OrderRequest) string { called = true; return "X" }))

			book, o, err := l.PlaceOrder(start, tt.req)
			assert.True(t, errors.Is(err, ErrInvalidOrder), "got %v", err)
			assert.Equal(t, Order{}, o)
			assert.Equal(t, start, book)
			assert.False(t, called, "rejected orders must not mint ids")
		})
	}
}

func TestAtMostOnePositionPerSymbol(t *testing.T) {
	t.Parallel()

	// scripted walk through every branch on two symbols
	l := New(seqIDs())
	book := Book{}
	steps := []OrderRequest{
		req(Buy, 1, 100), req(Buy, 2, 101), req(Sell, 1, 102), req(Sell, 5, 99),
		{Symbol: "XAU", Side: Buy, Size: 1, Price: 2000},
		req(Buy, 3, 98), req(Sell, 0.5, 97),
		{Symbol: "XAU", Side: Sell, Size: 1, Price: 2001},
	}
	for _, s := range steps {
		next, _, err := l.PlaceOrder(book, s)
		require.NoError(t, err)
		book = next
		for sym, p := range book {
			assert.Equal(t, sym, p.Symbol)
			assert.Greater(t, p.Size, 0.0)
		}
	}
	es, ok := book.Get("ES")
	require.True(t, ok)
	assert.Equal(t, Position{Symbol: "ES", Side: Short, Size: 0.5, EntryPrice: 97}, es)
	_, gold := book.Get("XAU")
	assert.False(t, gold)
}

func TestDefaultIDsAreULIDs(t *testing.T) {
	t.Parallel()

	l := New()
	_, o1, err := l.PlaceOrder(Book{}, req(Buy, 1, 100))
	require.NoError(t, err)
	_, o2, err := l.PlaceOrder(Book{}, OrderRequest{Symbol: "ES", Side: Buy, Size: 1, Price: 100})
	require.NoError(t, err)

	assert.Len(t, o1.ID, 26)
	assert.Len(t, o2.ID, 26)
	assert.NotEqual(t, o1.ID, o2.ID)
}

func TestDefaultIDsOutsideULIDRange(t *testing.T) {
	t.Parallel()

	l := New()
	for _, ts := range []time.Time{
		{},
		time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(12000, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		r := req(Buy, 1, 1)
		r.Time = ts

		var (
			book Book
			o    Order
			err  error
		)
		require.NotPanics(t, func() { book, o, err = l.PlaceOrder(Book{}, r) }, ts.String())
		require.NoError(t, err)
		assert.Len(t, o.ID, 26)
		assert.True(t, o.Time.Equal(ts), "order keeps its requested time")
		assert.Equal(t, Position{Symbol: "ES", Side: Long, Size: 1, EntryPrice: 1}, book["ES"])
	}
}

func TestParseSide(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Side{"buy": Buy, "SELL": Sell, " long ": Buy, "short": Sell} {
		got, err := ParseSide(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseSide("hold")
	assert.True(t, errors.Is(err, ErrInvalidOrder))
}
