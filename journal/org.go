package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatOrderOrg renders an order as an Org-mode block. Structured facts
// go in a PROPERTIES drawer so they stay searchable.
func FormatOrderOrg(o OrderRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Order: %s %s %s (%s)\n", o.Side, o.Symbol, trimFloat(o.Size), shortID(o.OrderID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ORDER_ID: %s\n", o.OrderID)
	fmt.Fprintf(&b, ":SESSION_ID: %s\n", o.SessionID)
	fmt.Fprintf(&b, ":SYMBOL: %s\n", o.Symbol)
	fmt.Fprintf(&b, ":SIDE: %s\n", o.Side)
	fmt.Fprintf(&b, ":TYPE: %s\n", o.Type)
	fmt.Fprintf(&b, ":SIZE: %s\n", trimFloat(o.Size))
	fmt.Fprintf(&b, ":PRICE: %.2f\n", o.Price)
	fmt.Fprintf(&b, ":TIME: %s\n", o.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":STATUS: %s\n", o.Status)
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatOrdersOrg renders multiple orders separated by blank lines.
func FormatOrdersOrg(orders []OrderRecord) string {
	var b strings.Builder
	for i, o := range orders {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatOrderOrg(o))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

func trimFloat(x float64) string {
	return fmt.Sprintf("%g", x)
}
