package cmd

import (
	"fmt"

	"github.com/rustyeddy/playground/config"
	"github.com/rustyeddy/playground/journal"
)

const defaultDBPath = "./playground.sqlite"

// openJournal builds the journal the config asks for. A nil journal
// means none.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		j, err := journal.NewCSV(jc.OrdersFile, jc.PositionsFile)
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil
	case "sqlite":
		path := jc.DBPath
		if path == "" {
			path = defaultDBPath
		}
		j, err := journal.NewSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return j, nil
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}
