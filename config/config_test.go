package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/playground/market"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, "ES", cfg.Session.Symbol)
	assert.Equal(t, 100, cfg.Session.StartIndex)
	assert.Len(t, cfg.Instruments, 2)
	assert.NoError(t, cfg.Validate())

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, market.Instruments["ES"], cat["ES"])
	assert.Equal(t, market.Instruments["XAU"], cat["XAU"])
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"cfg.yaml", "cfg.json"} {
		path := filepath.Join(dir, name)
		cfg := Default()
		cfg.Journal = JournalConfig{Type: "sqlite", DBPath: "./play.sqlite"}
		require.NoError(t, cfg.SaveToFile(path))

		loaded, err := LoadFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, loaded, name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := `
instruments:
  - symbol: BTC
    start_price: 30000
    volatility: 50
    bars: 500
    start: "2024-01-01T00:00:00Z"
    seed: 7
session:
  symbol: BTC
  start_index: 20
journal:
  type: csv
  orders_file: orders.csv
  positions_file: positions.csv
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BTC", cfg.Session.Symbol)
	assert.Equal(t, 500, cfg.Instruments[0].Bars)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"no_instruments", func(c *Config) { c.Instruments = nil }},
		{"duplicate", func(c *Config) { c.Instruments = append(c.Instruments, c.Instruments[0]) }},
		{"empty_symbol", func(c *Config) { c.Instruments[0].Symbol = "" }},
		{"bad_start", func(c *Config) { c.Instruments[0].Start = "yesterday" }},
		{"zero_bars", func(c *Config) { c.Instruments[0].Bars = 0 }},
		{"negative_volatility", func(c *Config) { c.Instruments[0].Volatility = -1 }},
		{"unknown_session_symbol", func(c *Config) { c.Session.Symbol = "BTC" }},
		{"negative_start_index", func(c *Config) { c.Session.StartIndex = -1 }},
		{"bad_journal", func(c *Config) { c.Journal.Type = "postgres" }},
		{"csv_without_files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite_without_path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
		{"bad_level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad_format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
