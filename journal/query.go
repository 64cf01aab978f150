package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

const orderColumns = `order_id, session_id, symbol, side, type, size, price, time, status`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (OrderRecord, error) {
	var rec OrderRecord
	err := s.Scan(
		&rec.OrderID,
		&rec.SessionID,
		&rec.Symbol,
		&rec.Side,
		&rec.Type,
		&rec.Size,
		&rec.Price,
		&rec.Time,
		&rec.Status,
	)
	rec.Time = rec.Time.UTC()
	return rec, err
}

// GetOrder returns a single order by ID.
func (j *SQLite) GetOrder(orderID string) (OrderRecord, error) {
	row := j.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID)

	rec, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderRecord{}, fmt.Errorf("order %q not found", orderID)
		}
		return OrderRecord{}, err
	}
	return rec, nil
}

// ListOrders returns a session's orders oldest first. An empty sessionID
// lists every session.
func (j *SQLite) ListOrders(sessionID string) ([]OrderRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE ? = '' OR session_id = ?
		ORDER BY time ASC, order_id ASC`, sessionID, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPositions returns a session's position snapshots in insertion order.
func (j *SQLite) ListPositions(sessionID string) ([]PositionSnapshot, error) {
	rows, err := j.db.Query(`
		SELECT session_id, order_id, symbol, side, size, entry_price, time, open
		FROM positions
		WHERE session_id = ?
		ORDER BY rowid ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PositionSnapshot
	for rows.Next() {
		var p PositionSnapshot
		if err := rows.Scan(
			&p.SessionID,
			&p.OrderID,
			&p.Symbol,
			&p.Side,
			&p.Size,
			&p.EntryPrice,
			&p.Time,
			&p.Open,
		); err != nil {
			return nil, err
		}
		p.Time = p.Time.UTC()
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
