package event

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New creates a draft event with no line items and blank reconciliation
// fields. A blank date defaults to today.
func New(fields Fields, now time.Time) (Event, error) {
	location := strings.TrimSpace(fields.Location)
	if location == "" {
		return Event{}, fmt.Errorf("%w: location is required", ErrInvalidEvent)
	}

	date := strings.TrimSpace(fields.Date)
	if date == "" {
		date = now.Format(time.DateOnly)
	}

	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return Event{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidEvent)
	}

	return Event{
		ID:       uuid.NewString(),
		Date:     date,
		Location: location,
		Notes:    strings.TrimSpace(fields.Notes),
		Status:   StatusDraft,
	}, nil
}

// Finalize records the reconciliation totals and marks the event done.
// Line items are kept exactly as they are.
func Finalize(ev Event, rec Reconciliation) (Event, error) {
	if !ev.IsDraft() {
		return ev, ErrNotDraft
	}

	next := ev.Clone()
	next.Reconciliation = rec
	next.Status = StatusDone
	next.LastAction = nil

	return next, nil
}

// Book is the append-only list of events in creation order. Newest-first
// views are derived by reversing it, never by sorting on dates.
type Book struct {
	events []Event
}

func NewBook(events []Event) *Book {
	return &Book{events: slices.Clone(events)}
}

func (b *Book) Len() int {
	return len(b.events)
}

func (b *Book) Append(ev Event) {
	b.events = append(b.events, ev)
}

// Replace swaps in ev at the position of the event with the same id.
func (b *Book) Replace(ev Event) bool {
	i := b.indexOf(ev.ID)
	if i < 0 {
		return false
	}

	b.events[i] = ev

	return true
}

func (b *Book) Get(id string) (Event, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return Event{}, false
	}

	return b.events[i], true
}

// All returns events in creation order.
func (b *Book) All() []Event {
	return slices.Clone(b.events)
}

// History returns events newest first.
func (b *Book) History() []Event {
	out := slices.Clone(b.events)
	slices.Reverse(out)

	return out
}

// Recent returns at most n events, newest first.
func (b *Book) Recent(n int) []Event {
	out := b.History()
	if n >= 0 && len(out) > n {
		out = out[:n]
	}

	return out
}

// ActiveDraft returns the oldest event still in draft.
func (b *Book) ActiveDraft() (Event, bool) {
	for _, ev := range b.events {
		if ev.IsDraft() {
			return ev, true
		}
	}

	return Event{}, false
}

func (b *Book) indexOf(id string) int {
	return slices.IndexFunc(b.events, func(ev Event) bool { return ev.ID == id })
}
