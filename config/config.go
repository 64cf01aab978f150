package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/playground/market"
)

// Config represents the complete playground configuration
type Config struct {
	Instruments []InstrumentConfig `json:"instruments" yaml:"instruments"`
	Session     SessionConfig      `json:"session" yaml:"session"`
	Journal     JournalConfig      `json:"journal" yaml:"journal"`
	Log         LogConfig          `json:"log" yaml:"log"`
	Metrics     MetricsConfig      `json:"metrics" yaml:"metrics"`
}

// InstrumentConfig describes how to generate one instrument's series
type InstrumentConfig struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	StartPrice  float64 `json:"start_price" yaml:"start_price"`
	Volatility  float64 `json:"volatility" yaml:"volatility"`
	Bars        int     `json:"bars" yaml:"bars"`
	Start       string  `json:"start" yaml:"start"` // RFC3339
	Seed        int64   `json:"seed" yaml:"seed"`
}

// Meta converts the entry into generator metadata.
func (ic InstrumentConfig) Meta() (market.InstrumentMeta, error) {
	start, err := time.Parse(time.RFC3339, ic.Start)
	if err != nil {
		return market.InstrumentMeta{}, fmt.Errorf("instrument %s: bad start %q: %w", ic.Symbol, ic.Start, err)
	}
	meta := market.InstrumentMeta{
		Symbol:      ic.Symbol,
		Description: ic.Description,
		StartPrice:  ic.StartPrice,
		Volatility:  ic.Volatility,
		Bars:        ic.Bars,
		Start:       start.UTC(),
		Seed:        ic.Seed,
	}
	if err := meta.Params().Validate(); err != nil {
		return market.InstrumentMeta{}, fmt.Errorf("instrument %s: %w", ic.Symbol, err)
	}
	return meta, nil
}

// SessionConfig contains playback parameters
type SessionConfig struct {
	Symbol     string `json:"symbol" yaml:"symbol"`
	StartIndex int    `json:"start_index" yaml:"start_index"` // bars revealed at load
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	OrdersFile    string `json:"orders_file,omitempty" yaml:"orders_file,omitempty"`
	PositionsFile string `json:"positions_file,omitempty" yaml:"positions_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig controls the logrus logger
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// MetricsConfig controls the Prometheus endpoint; empty Addr disables it
type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	seen := map[string]bool{}
	for _, ic := range c.Instruments {
		if ic.Symbol == "" {
			return fmt.Errorf("instrument symbol is required")
		}
		if seen[ic.Symbol] {
			return fmt.Errorf("duplicate instrument: %s", ic.Symbol)
		}
		seen[ic.Symbol] = true
		if _, err := ic.Meta(); err != nil {
			return err
		}
	}
	if c.Session.Symbol != "" && !seen[c.Session.Symbol] {
		return fmt.Errorf("session.symbol %q is not a configured instrument", c.Session.Symbol)
	}
	if c.Session.StartIndex < 0 {
		return fmt.Errorf("session.start_index must not be negative")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.OrdersFile == "" || c.Journal.PositionsFile == "" {
			return fmt.Errorf("journal orders_file and positions_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Catalog returns the configured instruments keyed by symbol.
func (c *Config) Catalog() (map[string]market.InstrumentMeta, error) {
	out := make(map[string]market.InstrumentMeta, len(c.Instruments))
	for _, ic := range c.Instruments {
		meta, err := ic.Meta()
		if err != nil {
			return nil, err
		}
		out[ic.Symbol] = meta
	}
	return out, nil
}

// FromMeta converts built-in instrument metadata into a config entry.
func FromMeta(m market.InstrumentMeta) InstrumentConfig {
	return InstrumentConfig{
		Symbol:      m.Symbol,
		Description: m.Description,
		StartPrice:  m.StartPrice,
		Volatility:  m.Volatility,
		Bars:        m.Bars,
		Start:       m.Start.UTC().Format(time.RFC3339),
		Seed:        m.Seed,
	}
}

// Default returns a configuration with the built-in ES and XAU presets
func Default() *Config {
	cfg := &Config{
		Session: SessionConfig{
			Symbol:     "ES",
			StartIndex: 100,
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
	for _, sym := range market.Symbols() {
		cfg.Instruments = append(cfg.Instruments, FromMeta(market.Instruments[sym]))
	}
	return cfg
}
