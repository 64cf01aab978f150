// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS orders (
	order_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	type TEXT NOT NULL,
	size REAL NOT NULL,
	price REAL NOT NULL,
	time DATETIME NOT NULL,
	status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS positions (
	session_id TEXT NOT NULL,
	order_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	size REAL NOT NULL,
	entry_price REAL NOT NULL,
	time DATETIME NOT NULL,
	open INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_session ON orders(session_id, time);
CREATE INDEX IF NOT EXISTS idx_positions_session ON positions(session_id, time);
`
