package export

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
)

// Header is the first row of every export.
var Header = []string{"Product", "Qty", "Unit Price", "Total"}

// Rows lays out ev as a table: the header, one row per line item in first-tap
// order, an empty separator row, then the money summary taken from s.
func Rows(ev event.Event, s revenue.Summary) [][]string {
	entries := ev.LineItems.Entries()
	rows := make([][]string, 0, len(entries)+8)

	rows = append(rows, Header)

	for _, e := range entries {
		rows = append(rows, []string{
			e.Name,
			strconv.Itoa(e.Qty),
			e.Price.StringFixed(2),
			e.Total().StringFixed(2),
		})
	}

	rows = append(rows,
		[]string{},
		summaryRow("Square", s.Square),
		summaryRow("Cash App", s.CashApp),
		summaryRow("Cash Sales", s.Cash),
		summaryRow("Vendor Fee", revenue.ParseAmount(ev.VendorFee)),
		summaryRow("Other Expenses", revenue.ParseAmount(ev.OtherExpenses)),
		summaryRow("Net Profit", s.Net),
	)

	return rows
}

func summaryRow(label string, amount decimal.Decimal) []string {
	return []string{label, "", "", formatAmount(amount)}
}

func formatAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}

	return d.StringFixed(2)
}

// Filename names the export of ev: "<location>-<date>.<ext>", with "event"
// standing in for a blank location.
func Filename(ev event.Event, ext string) string {
	location := strings.TrimSpace(ev.Location)
	if location == "" {
		location = "event"
	}

	location = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}

		return r
	}, location)

	return location + "-" + ev.Date + "." + strings.TrimPrefix(ext, ".")
}
