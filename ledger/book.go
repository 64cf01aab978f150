package ledger

import "sort"

// Book maps a symbol to its open position. A symbol with no entry is flat.
type Book map[string]Position

// Get returns the position for symbol, if any.
func (b Book) Get(symbol string) (Position, bool) {
	p, ok := b[symbol]
	return p, ok
}

func (b Book) Len() int { return len(b) }

// Clone returns an independent copy of the book.
func (b Book) Clone() Book {
	out := make(Book, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Symbols returns the symbols with open positions, sorted.
func (b Book) Symbols() []string {
	out := make([]string, 0, len(b))
	for s := range b {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Positions returns the open positions sorted by symbol.
func (b Book) Positions() []Position {
	out := make([]Position, 0, len(b))
	for _, s := range b.Symbols() {
		out = append(out, b[s])
	}
	return out
}

// Value values every position against marks[symbol]. Positions without a
// mark are valued at their entry price.
func (b Book) Value(marks map[string]float64) []Valuation {
	out := make([]Valuation, 0, len(b))
	for _, p := range b.Positions() {
		mark, ok := marks[p.Symbol]
		if !ok {
			mark = p.EntryPrice
		}
		out = append(out, Value(p, mark))
	}
	return out
}
