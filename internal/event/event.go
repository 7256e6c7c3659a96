package event

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("event not found")
	ErrNotDraft     = errors.New("event is finalized")
	ErrDraftExists  = errors.New("a draft event already exists")
	ErrInvalidEvent = errors.New("invalid event")
)

// Status represents the lifecycle state of an event. Draft moves to done exactly once.
type Status string

const (
	StatusDraft Status = "draft"
	StatusDone  Status = "done"
)

// LineItem is the sales record for one product within one event.
// Price and Name are copied from the catalog at first tap.
type LineItem struct {
	Qty   int             `json:"qty"`
	Price decimal.Decimal `json:"price"`
	Name  string          `json:"name"`
}

// Total returns Qty * Price.
func (li LineItem) Total() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// LastAction is the single pending undo slot: the quantity the product had
// before the most recent tap.
type LastAction struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

// Reconciliation holds the operator-entered totals recorded at end of day.
// Values are free-form decimal strings; blank or unparseable counts as zero.
type Reconciliation struct {
	SquareTotal   string `json:"square_total"`
	CashAppTotal  string `json:"cash_app_total"`
	VendorFee     string `json:"vendor_fee"`
	OtherExpenses string `json:"other_expenses"`
	// CashRevenue overrides the tap-derived cash figure once the event is done.
	CashRevenue string `json:"cash_revenue"`
}

// Fields are the operator-supplied details of a new event.
type Fields struct {
	Date     string
	Location string
	Notes    string
}

// Event is one selling day at one location.
type Event struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	Location   string      `json:"location"`
	Notes      string      `json:"notes"`
	LineItems  LineItems   `json:"line_items"`
	LastAction *LastAction `json:"last_action"`
	Status     Status      `json:"status"`

	Reconciliation
}

func (e Event) IsDraft() bool {
	return e.Status == StatusDraft
}

// Clone returns a copy that shares no mutable state with e.
func (e Event) Clone() Event {
	c := e
	c.LineItems = e.LineItems.clone()

	if e.LastAction != nil {
		la := *e.LastAction
		c.LastAction = &la
	}

	return c
}
