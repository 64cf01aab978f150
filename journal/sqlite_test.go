package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('orders','positions')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["orders"])
	assert.True(t, found["positions"])
}

func TestSQLiteOrders(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	first := OrderRecord{
		SessionID: "S1", OrderID: "O1", Symbol: "ES", Side: "BUY", Type: "MARKET",
		Size: 2, Price: 4500.123456, Time: when, Status: "FILLED",
	}
	second := first
	second.OrderID = "O2"
	second.Side = "SELL"
	second.Time = when.Add(5 * time.Minute)
	other := first
	other.OrderID = "O3"
	other.SessionID = "S2"

	// out of order on purpose: listing sorts by time
	require.NoError(t, j.RecordOrder(second))
	require.NoError(t, j.RecordOrder(first))
	require.NoError(t, j.RecordOrder(other))

	got, err := j.GetOrder("O1")
	require.NoError(t, err)
	assert.True(t, first.Time.Equal(got.Time))
	got.Time = first.Time
	assert.Equal(t, first, got)

	_, err = j.GetOrder("nope")
	assert.ErrorContains(t, err, "not found")

	list, err := j.ListOrders("S1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "O1", list[0].OrderID)
	assert.Equal(t, "O2", list[1].OrderID)

	all, err := j.ListOrders("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// order ids are primary keys
	assert.Error(t, j.RecordOrder(first))
}

func TestSQLitePositions(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	open := PositionSnapshot{
		SessionID: "S1", OrderID: "O1", Symbol: "ES", Side: "LONG",
		Size: 5, EntryPrice: 100, Time: when, Open: true,
	}
	closed := PositionSnapshot{SessionID: "S1", OrderID: "O2", Symbol: "ES", Time: when.Add(time.Minute)}

	require.NoError(t, j.RecordPosition(open))
	require.NoError(t, j.RecordPosition(closed))

	list, err := j.ListPositions("S1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Open)
	assert.Equal(t, 5.0, list[0].Size)
	assert.Equal(t, "LONG", list[0].Side)
	assert.False(t, list[1].Open)
	assert.True(t, closed.Time.Equal(list[1].Time))
}
