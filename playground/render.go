package playground

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/rustyeddy/playground/ledger"
)

func newTable(w io.Writer, header []string, align []int) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetColumnAlignment(align)
	return table
}

// RenderPositions writes one row per position with its PnL and ROE.
func RenderPositions(w io.Writer, vals []ledger.Valuation) error {
	if len(vals) == 0 {
		_, err := fmt.Fprintln(w, "No open positions")
		return err
	}

	table := newTable(w,
		[]string{"Symbol", "Side", "Size", "Entry Price", "Mark Price", "PnL (ROE%)"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT},
	)
	for _, v := range vals {
		sign := ""
		if v.PnL > 0 {
			sign = "+"
		}
		table.Append([]string{
			v.Symbol,
			string(v.Side),
			formatSize(v.Size),
			fmt.Sprintf("%.2f", v.EntryPrice),
			fmt.Sprintf("%.2f", v.Mark),
			fmt.Sprintf("%s%.2f (%.2f%%)", sign, v.PnL, v.ROE),
		})
	}
	table.Render()
	return nil
}

// RenderOrders writes the order history newest first.
func RenderOrders(w io.Writer, orders []ledger.Order) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No order history")
		return err
	}

	table := newTable(w,
		[]string{"Time", "Symbol", "Type", "Side", "Price", "Size", "Status"},
		[]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT},
	)
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		table.Append([]string{
			o.Time.UTC().Format(time.DateTime),
			o.Symbol,
			string(o.Type),
			string(o.Side),
			fmt.Sprintf("%.2f", o.Price),
			formatSize(o.Size),
			string(o.Status),
		})
	}
	table.Render()
	return nil
}

func formatSize(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
