package event

import (
	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
)

// Catalog resolves product ids to their current catalog entry.
type Catalog interface {
	Lookup(id string) (catalog.Product, bool)
}

// Tap records one sale of productID. The first tap of a product snapshots its
// catalog name and price; later taps only increment the quantity. The quantity
// before the tap is kept as the single undo step, replacing any earlier one.
//
// A product missing from the catalog leaves the event untouched.
func Tap(ev Event, productID string, cat Catalog) (Event, error) {
	if !ev.IsDraft() {
		return ev, ErrNotDraft
	}

	product, ok := cat.Lookup(productID)
	if !ok {
		return ev, nil
	}

	next := ev.Clone()

	li, ok := next.LineItems.Get(productID)
	if !ok {
		li = LineItem{Price: product.Price, Name: product.Name}
	}

	prev := li.Qty
	li.Qty++

	next.LineItems.set(productID, li)
	next.LastAction = &LastAction{ProductID: productID, Qty: prev}

	return next, nil
}

// Undo reverts the most recent tap. Reverting a first tap removes the line
// item. The undo slot is cleared, so a second Undo is a no-op.
func Undo(ev Event) (Event, error) {
	if !ev.IsDraft() {
		return ev, ErrNotDraft
	}

	if ev.LastAction == nil {
		return ev, nil
	}

	next := ev.Clone()
	last := *next.LastAction
	next.LastAction = nil

	if last.Qty <= 0 {
		next.LineItems.remove(last.ProductID)
		return next, nil
	}

	if li, ok := next.LineItems.Get(last.ProductID); ok {
		li.Qty = last.Qty
		next.LineItems.set(last.ProductID, li)
	}

	return next, nil
}

// SetQuantity sets an absolute quantity. qty <= 0 removes the line item.
// Manual sets are not undoable and discard any pending undo.
//
// A product missing from the catalog leaves the event untouched.
func SetQuantity(ev Event, productID string, qty int, cat Catalog) (Event, error) {
	if !ev.IsDraft() {
		return ev, ErrNotDraft
	}

	product, ok := cat.Lookup(productID)
	if !ok {
		return ev, nil
	}

	next := ev.Clone()
	next.LastAction = nil

	if qty <= 0 {
		next.LineItems.remove(productID)
		return next, nil
	}

	li, ok := next.LineItems.Get(productID)
	if !ok {
		li = LineItem{Price: product.Price, Name: product.Name}
	}

	li.Qty = qty
	next.LineItems.set(productID, li)

	return next, nil
}
