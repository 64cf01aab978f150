package playground

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/playground/journal"
	"github.com/rustyeddy/playground/ledger"
	"github.com/rustyeddy/playground/market"
	"github.com/rustyeddy/playground/metrics"
)

// DefaultStartIndex is how many bars of history are revealed on load.
const DefaultStartIndex = 100

var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrNoInstrument      = errors.New("no instrument selected")
	// ErrJournal wraps journal failures. The order it accompanies has
	// already been applied to the book.
	ErrJournal = errors.New("journal")
)

type Options struct {
	// Instruments defaults to market.Instruments.
	Instruments map[string]market.InstrumentMeta
	// StartIndex is the cursor position after Select and Reset. Negative
	// values mean DefaultStartIndex.
	StartIndex int
	Ledger     *ledger.Ledger
	Journal    journal.Journal
	Metrics    *metrics.Metrics
	Logger     *logrus.Logger
}

// Session hosts one playground: the selected instrument's series, the bar
// cursor, the position book and the order log. All methods are safe for
// concurrent use; they are serialised so orders apply one at a time.
type Session struct {
	mu sync.Mutex

	id          string
	instruments map[string]market.InstrumentMeta
	series      map[string]market.Series
	start       int

	symbol string
	cursor int

	book   ledger.Book
	orders []ledger.Order
	marks  map[string]float64

	ledger  *ledger.Ledger
	journal journal.Journal
	metrics *metrics.Metrics
	log     *logrus.Entry
}

func New(opts Options) *Session {
	s := &Session{
		id:          uuid.NewString(),
		instruments: opts.Instruments,
		series:      map[string]market.Series{},
		start:       opts.StartIndex,
		book:        ledger.Book{},
		marks:       map[string]float64{},
		ledger:      opts.Ledger,
		journal:     opts.Journal,
		metrics:     opts.Metrics,
	}
	if s.instruments == nil {
		s.instruments = market.Instruments
	}
	if s.start < 0 {
		s.start = DefaultStartIndex
	}
	if s.ledger == nil {
		s.ledger = ledger.New()
	}
	if s.journal == nil {
		s.journal = journal.Nop{}
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s.log = logger.WithField("session", s.id)
	return s
}

func (s *Session) ID() string { return s.id }

// Metrics returns the collectors the session updates.
func (s *Session) Metrics() *metrics.Metrics { return s.metrics }

// Select switches to symbol, generating its series on first use, and
// moves the cursor to the start index. Open positions are kept, including
// those on other symbols.
func (s *Session) Select(symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, ok := s.instruments[symbol]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownInstrument, symbol)
	}

	if _, ok := s.series[symbol]; !ok {
		bars, err := market.Generate(meta.Params())
		if err != nil {
			return fmt.Errorf("generate %s: %w", symbol, err)
		}
		s.series[symbol] = bars
		s.metrics.Bars.WithLabelValues(symbol).Add(float64(len(bars)))
		s.log.WithFields(logrus.Fields{
			"symbol": symbol,
			"bars":   len(bars),
			"seed":   meta.Seed,
		}).Debug("generated series")
	}

	s.symbol = symbol
	s.resetLocked()
	s.log.WithFields(logrus.Fields{"symbol": symbol, "cursor": s.cursor}).Info("instrument selected")
	return nil
}

// Symbol returns the selected instrument, or "" before the first Select.
func (s *Session) Symbol() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbol
}

// Next reveals one more bar. It returns false when the series is exhausted
// or nothing is selected.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(1) == 1
}

// Advance reveals up to n more bars and returns how many were revealed.
func (s *Session) Advance(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(n)
}

// Reset moves the cursor back to the start index.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Cursor returns the index of the latest visible bar.
func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Visible returns the revealed bars, oldest first.
func (s *Session) Visible() market.Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	bars, ok := s.series[s.symbol]
	if !ok {
		return nil
	}
	return bars.Window(s.cursor + 1)
}

// Current returns the latest visible bar.
func (s *Session) Current() (market.Bar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

// MarkPrice is the close of the latest visible bar.
func (s *Session) MarkPrice() (float64, error) {
	bar, err := s.Current()
	if err != nil {
		return 0, err
	}
	return bar.Close, nil
}

// Place submits a market order on the selected symbol at the current mark.
func (s *Session) Place(side ledger.Side, size float64) (ledger.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placeLocked(side, size)
}

// Close flattens the position on symbol (the selected one when empty) with
// an opposing order of the same size. Only the selected symbol has a live
// price, so closing another symbol is refused.
func (s *Session) Close(symbol string) (ledger.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if symbol == "" {
		symbol = s.symbol
	}
	if symbol != s.symbol {
		return ledger.Order{}, fmt.Errorf("close %s: only the selected instrument %q can trade", symbol, s.symbol)
	}
	p, ok := s.book.Get(symbol)
	if !ok {
		return ledger.Order{}, fmt.Errorf("close %s: no open position", symbol)
	}
	return s.placeLocked(p.Side.Closing(), p.Size)
}

// Positions values every open position. The selected symbol is marked at
// the current close; others at the last close seen while they were
// selected.
func (s *Session) Positions() []ledger.Valuation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Value(s.marks)
}

// Book returns a copy of the position book.
func (s *Session) Book() ledger.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Clone()
}

// Orders returns a copy of the order log, oldest first.
func (s *Session) Orders() []ledger.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Snapshot is a read-only view of the session for display.
type Snapshot struct {
	SessionID string
	Symbol    string
	Cursor    int
	Bars      int
	Time      time.Time
	Mark      float64
	Positions []ledger.Valuation
	Orders    []ledger.Order
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID: s.id,
		Symbol:    s.symbol,
		Cursor:    s.cursor,
		Bars:      len(s.series[s.symbol]),
		Positions: s.book.Value(s.marks),
		Orders:    make([]ledger.Order, len(s.orders)),
	}
	copy(snap.Orders, s.orders)
	if bar, err := s.currentLocked(); err == nil {
		snap.Time = bar.Time()
		snap.Mark = bar.Close
	}
	return snap
}

func (s *Session) currentLocked() (market.Bar, error) {
	bars, ok := s.series[s.symbol]
	if !ok {
		return market.Bar{}, ErrNoInstrument
	}
	bar, ok := bars.At(s.cursor)
	if !ok {
		return market.Bar{}, fmt.Errorf("cursor %d outside series of %d bars", s.cursor, len(bars))
	}
	return bar, nil
}

func (s *Session) resetLocked() {
	bars, ok := s.series[s.symbol]
	if !ok {
		return
	}
	s.cursor = min(s.start, len(bars)-1)
	s.refreshMarkLocked()
}

func (s *Session) advanceLocked(n int) int {
	bars, ok := s.series[s.symbol]
	if !ok || n <= 0 {
		return 0
	}
	moved := min(n, len(bars)-1-s.cursor)
	if moved <= 0 {
		return 0
	}
	s.cursor += moved
	s.refreshMarkLocked()
	return moved
}

// refreshMarkLocked records the current close as the selected symbol's
// mark and republishes its unrealized PnL.
func (s *Session) refreshMarkLocked() {
	bar, err := s.currentLocked()
	if err != nil {
		return
	}
	s.marks[s.symbol] = bar.Close
	s.publishPnLLocked(s.symbol)
}

func (s *Session) publishPnLLocked(symbol string) {
	p, ok := s.book.Get(symbol)
	if !ok {
		s.metrics.UnrealizedPnL.DeleteLabelValues(symbol)
		return
	}
	mark, ok := s.marks[symbol]
	if !ok {
		mark = p.EntryPrice
	}
	s.metrics.UnrealizedPnL.WithLabelValues(symbol).Set(ledger.UnrealizedPnL(p, mark))
}

func (s *Session) placeLocked(side ledger.Side, size float64) (ledger.Order, error) {
	bar, err := s.currentLocked()
	if err != nil {
		return ledger.Order{}, err
	}

	req := ledger.OrderRequest{
		Symbol: s.symbol,
		Side:   side,
		Type:   ledger.Market,
		Size:   size,
		Price:  bar.Close,
		Time:   bar.Time(),
	}
	log := s.log.WithFields(logrus.Fields{
		"symbol": req.Symbol,
		"side":   req.Side,
		"size":   req.Size,
		"price":  req.Price,
	})

	book, order, err := s.ledger.PlaceOrder(s.book, req)
	if err != nil {
		s.metrics.Rejections.WithLabelValues(req.Symbol).Inc()
		log.WithError(err).Warn("order rejected")
		return ledger.Order{}, err
	}

	s.book = book
	s.orders = append(s.orders, order)

	s.metrics.Orders.WithLabelValues(order.Symbol, string(order.Side)).Inc()
	s.metrics.OpenPositions.Set(float64(s.book.Len()))
	s.publishPnLLocked(order.Symbol)

	if p, ok := s.book.Get(order.Symbol); ok {
		log = log.WithFields(logrus.Fields{
			"position": p.Side,
			"net_size": p.Size,
			"entry":    p.EntryPrice,
		})
	} else {
		log = log.WithField("position", "FLAT")
	}
	log.WithField("order_id", order.ID).Info("order filled")

	if err := s.journal.RecordOrder(journal.NewOrderRecord(s.id, order)); err != nil {
		return order, fmt.Errorf("%w: record order %s: %v", ErrJournal, order.ID, err)
	}
	if err := s.journal.RecordPosition(journal.NewPositionSnapshot(s.id, order, s.book)); err != nil {
		return order, fmt.Errorf("%w: record position %s: %v", ErrJournal, order.ID, err)
	}
	return order, nil
}
