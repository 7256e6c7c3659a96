package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Entry pairs a line item with the product id it is keyed by.
type Entry struct {
	ProductID string
	LineItem
}

// LineItems maps product id to line item and remembers the order in which
// products were first added. The zero value is empty and ready to use.
type LineItems struct {
	order []string
	items map[string]LineItem
}

func (l LineItems) Len() int {
	return len(l.order)
}

func (l LineItems) Get(productID string) (LineItem, bool) {
	li, ok := l.items[productID]
	return li, ok
}

// Entries returns the line items in first-tap order.
func (l LineItems) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, Entry{ProductID: id, LineItem: l.items[id]})
	}

	return out
}

// ByTotal returns the line items sorted by line total, largest first.
// Ties keep first-tap order.
func (l LineItems) ByTotal() []Entry {
	entries := l.Entries()
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Total().Cmp(a.Total())
	})

	return entries
}

func (l *LineItems) set(productID string, li LineItem) {
	if l.items == nil {
		l.items = make(map[string]LineItem)
	}

	if _, ok := l.items[productID]; !ok {
		l.order = append(l.order, productID)
	}

	l.items[productID] = li
}

func (l *LineItems) remove(productID string) {
	if _, ok := l.items[productID]; !ok {
		return
	}

	delete(l.items, productID)
	l.order = slices.DeleteFunc(l.order, func(id string) bool { return id == productID })
}

func (l LineItems) clone() LineItems {
	c := LineItems{
		order: slices.Clone(l.order),
		items: make(map[string]LineItem, len(l.items)),
	}

	for k, v := range l.items {
		c.items[k] = v
	}

	return c
}

// MarshalJSON encodes the line items as a JSON object in first-tap order.
func (l LineItems) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, id := range l.order {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(l.items[id])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order. Entries with a
// non-positive quantity are dropped.
func (l *LineItems) UnmarshalJSON(data []byte) error {
	*l = LineItems{}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("line items: %w", err)
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("line items: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("line items: %w", err)
		}

		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("line items: expected key, got %v", tok)
		}

		var li LineItem
		if err := dec.Decode(&li); err != nil {
			return fmt.Errorf("line item %q: %w", id, err)
		}

		if li.Qty <= 0 {
			continue
		}

		l.set(id, li)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("line items: %w", err)
	}

	return nil
}
