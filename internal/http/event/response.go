package event

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/revenue"
)

type lineItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

type reconciliationDTO struct {
	SquareTotal   string `json:"square_total"`
	CashAppTotal  string `json:"cash_app_total"`
	VendorFee     string `json:"vendor_fee"`
	OtherExpenses string `json:"other_expenses"`
	CashRevenue   string `json:"cash_revenue"`
}

func (d reconciliationDTO) toReconciliation() event.Reconciliation {
	return event.Reconciliation{
		SquareTotal:   d.SquareTotal,
		CashAppTotal:  d.CashAppTotal,
		VendorFee:     d.VendorFee,
		OtherExpenses: d.OtherExpenses,
		CashRevenue:   d.CashRevenue,
	}
}

func toReconciliationDTO(rec event.Reconciliation) reconciliationDTO {
	return reconciliationDTO{
		SquareTotal:   rec.SquareTotal,
		CashAppTotal:  rec.CashAppTotal,
		VendorFee:     rec.VendorFee,
		OtherExpenses: rec.OtherExpenses,
		CashRevenue:   rec.CashRevenue,
	}
}

type eventResponse struct {
	ID             string             `json:"id"`
	Date           string             `json:"date"`
	Location       string             `json:"location"`
	Notes          string             `json:"notes"`
	Status         event.Status       `json:"status"`
	LineItems      []lineItemResponse `json:"line_items"`
	CanUndo        bool               `json:"can_undo"`
	Reconciliation reconciliationDTO  `json:"reconciliation"`
	Revenue        revenue.Summary    `json:"revenue"`
}

// toResponse lists line items in first-tap order, or by line total when
// byTotal is set.
func toResponse(ev event.Event, byTotal bool) eventResponse {
	entries := ev.LineItems.Entries()
	if byTotal {
		entries = ev.LineItems.ByTotal()
	}

	items := make([]lineItemResponse, len(entries))
	for i, e := range entries {
		items[i] = lineItemResponse{
			ProductID: e.ProductID,
			Name:      e.Name,
			Qty:       e.Qty,
			Price:     e.Price,
			Total:     e.Total(),
		}
	}

	return eventResponse{
		ID:             ev.ID,
		Date:           ev.Date,
		Location:       ev.Location,
		Notes:          ev.Notes,
		Status:         ev.Status,
		LineItems:      items,
		CanUndo:        ev.LastAction != nil,
		Reconciliation: toReconciliationDTO(ev.Reconciliation),
		Revenue:        revenue.Compute(&ev),
	}
}

func toResponseList(events []event.Event) []eventResponse {
	resp := make([]eventResponse, len(events))
	for i, ev := range events {
		resp[i] = toResponse(ev, false)
	}

	return resp
}

type summaryResponse struct {
	LifetimeRevenue decimal.Decimal `json:"lifetime_revenue"`
	EventCount      int             `json:"event_count"`
	Active          *eventResponse  `json:"active"`
	Recent          []eventResponse `json:"recent"`
}
