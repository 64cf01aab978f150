package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/playground/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the order journal",
	Long: `Query and display order records from a SQLite journal.

Subcommands:
  order   - Show a single order by ID
  orders  - List orders, optionally for one session

Examples:
  playground journal order 01HRZ8Q6J4C3XK7V2B9N5T0M1A
  playground journal orders
  playground journal orders 2f0c1b8e-7d4a-4c0e-9f57-3c2d6a1e8b90`,
}

var journalOrderCmd = &cobra.Command{
	Use:   "order <order-id>",
	Short: "Show a single order",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalOrder,
}

var journalOrdersCmd = &cobra.Command{
	Use:   "orders [session-id]",
	Short: "List orders, oldest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalOrders,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalOrderCmd)
	journalCmd.AddCommand(journalOrdersCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default journal.db_path)")
}

func openJournalDB() (*journal.SQLite, error) {
	path := journalDBPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Journal.DBPath
	}
	if path == "" {
		path = defaultDBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalOrder(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetOrder(args[0])
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatOrderOrg(rec))
	return nil
}

func runJournalOrders(cmd *cobra.Command, args []string) error {
	j, err := openJournalDB()
	if err != nil {
		return err
	}
	defer j.Close()

	session := ""
	if len(args) == 1 {
		session = args[0]
	}
	recs, err := j.ListOrders(session)
	if err != nil {
		return fmt.Errorf("query orders: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatOrdersOrg(recs))
	return nil
}
