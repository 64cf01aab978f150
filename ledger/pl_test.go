package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pos     Position
		mark    float64
		wantPnL float64
		wantROE float64
	}{
		{"long_profit", Position{Side: Long, Size: 10, EntryPrice: 100}, 110, 100, 10},
		{"short_loss", Position{Side: Short, Size: 10, EntryPrice: 100}, 110, -100, -10},
		{"long_loss", Position{Side: Long, Size: 2, EntryPrice: 50}, 45, -10, -10},
		{"short_profit", Position{Side: Short, Size: 4, EntryPrice: 200}, 150, 200, 25},
		{"at_entry", Position{Side: Long, Size: 3, EntryPrice: 80}, 80, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := Value(tt.pos, tt.mark)
			assert.InDelta(t, tt.wantPnL, v.PnL, 1e-9)
			assert.InDelta(t, tt.wantROE, v.ROE, 1e-9)
			assert.Equal(t, tt.mark, v.Mark)
			assert.Equal(t, tt.pos, v.Position)
		})
	}
}

func TestBookValue(t *testing.T) {
	t.Parallel()

	b := Book{
		"XAU": {Symbol: "XAU", Side: Short, Size: 1, EntryPrice: 2000},
		"ES":  {Symbol: "ES", Side: Long, Size: 2, EntryPrice: 4500},
	}
	vals := b.Value(map[string]float64{"ES": 4510})

	assert.Len(t, vals, 2)
	assert.Equal(t, "ES", vals[0].Symbol)
	assert.InDelta(t, 20.0, vals[0].PnL, 1e-9)
	// no mark for XAU: valued flat at entry
	assert.Equal(t, "XAU", vals[1].Symbol)
	assert.Equal(t, 0.0, vals[1].PnL)
}

func TestSideHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Sell, Buy.Opposite())
	assert.Equal(t, Buy, Sell.Opposite())
	assert.Equal(t, Sell, Long.Closing())
	assert.Equal(t, Buy, Short.Closing())
	assert.Equal(t, 1.0, Long.Sign())
	assert.Equal(t, -1.0, Short.Sign())
}
