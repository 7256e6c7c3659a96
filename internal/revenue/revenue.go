package revenue

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
)

// Summary is the money picture of one event.
type Summary struct {
	Cash     decimal.Decimal `json:"cash"`
	Square   decimal.Decimal `json:"square"`
	CashApp  decimal.Decimal `json:"cash_app"`
	Gross    decimal.Decimal `json:"gross"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Items    int             `json:"items"`
}

// Compute derives the revenue summary of ev. A nil event yields all zeros.
//
// Cash is always the tap tally. Gross equals cash while the event is a draft;
// once done it is Square + Cash App + the cash override, falling back to the
// tap tally when the override is blank or unparseable.
func Compute(ev *event.Event) Summary {
	s := Summary{
		Cash:     decimal.Zero,
		Square:   decimal.Zero,
		CashApp:  decimal.Zero,
		Gross:    decimal.Zero,
		Expenses: decimal.Zero,
		Net:      decimal.Zero,
	}

	if ev == nil {
		return s
	}

	for _, e := range ev.LineItems.Entries() {
		s.Cash = s.Cash.Add(e.Total())
		s.Items += e.Qty
	}

	s.Square = ParseAmount(ev.SquareTotal)
	s.CashApp = ParseAmount(ev.CashAppTotal)
	s.Expenses = ParseAmount(ev.VendorFee).Add(ParseAmount(ev.OtherExpenses))

	s.Gross = s.Cash
	if ev.Status == event.StatusDone {
		cash := s.Cash
		if override, ok := parse(ev.CashRevenue); ok {
			cash = override
		}

		s.Gross = s.Square.Add(s.CashApp).Add(cash)
	}

	s.Net = s.Gross.Sub(s.Expenses)

	return s
}

// ParseAmount reads an operator-entered money string. Surrounding space,
// dollar signs and thousands separators are ignored. Anything else that does
// not parse counts as zero.
func ParseAmount(s string) decimal.Decimal {
	d, _ := parse(s)
	return d
}

func parse(s string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// Prefill returns the reconciliation form values for ending ev's day: the
// fields already recorded, with the cash override defaulting to the tap tally.
func Prefill(ev event.Event) event.Reconciliation {
	rec := ev.Reconciliation
	if strings.TrimSpace(rec.CashRevenue) == "" {
		rec.CashRevenue = Compute(&ev).Cash.StringFixed(2)
	}

	return rec
}

// Lifetime sums gross revenue over finalized events.
func Lifetime(events []event.Event) decimal.Decimal {
	total := decimal.Zero

	for i := range events {
		if events[i].Status != event.StatusDone {
			continue
		}

		total = total.Add(Compute(&events[i]).Gross)
	}

	return total
}
