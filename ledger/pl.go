package ledger

// Valuation is a position marked to a price. It is derived on read and
// never stored.
type Valuation struct {
	Position
	Mark float64 `json:"mark"`
	PnL  float64 `json:"pnl"`
	ROE  float64 `json:"roe"` // percent
}

// UnrealizedPnL is (mark - entry) * sign * size.
func UnrealizedPnL(p Position, mark float64) float64 {
	return (mark - p.EntryPrice) * p.Side.Sign() * p.Size
}

// ROE is the signed percentage move from entry to mark.
func ROE(p Position, mark float64) float64 {
	if p.EntryPrice == 0 {
		return 0
	}
	return (mark - p.EntryPrice) / p.EntryPrice * p.Side.Sign() * 100
}

// Value marks p to mark.
func Value(p Position, mark float64) Valuation {
	return Valuation{
		Position: p,
		Mark:     mark,
		PnL:      UnrealizedPnL(p, mark),
		ROE:      ROE(p, mark),
	}
}
