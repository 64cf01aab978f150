package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordOrder(o OrderRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO orders
		(order_id, session_id, symbol, side, type, size, price, time, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.OrderID, o.SessionID, o.Symbol, o.Side, o.Type,
		o.Size, o.Price, o.Time, o.Status,
	)
	return err
}

func (j *SQLite) RecordPosition(p PositionSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO positions
		(session_id, order_id, symbol, side, size, entry_price, time, open)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SessionID, p.OrderID, p.Symbol, p.Side, p.Size, p.EntryPrice, p.Time, p.Open,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
