package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=event
type Repository interface {
	LoadEvents(ctx context.Context) ([]Event, error)
	SaveEvents(ctx context.Context, events []Event) error
}

// Service is the host for the event book: it owns the single in-memory copy,
// applies ledger operations to it and saves the whole book after every change.
// Save failures are logged and otherwise ignored.
type Service struct {
	repo    Repository
	catalog Catalog
	now     func() time.Time

	// saveMu serializes mutations with their save so snapshots reach the
	// repository in the order they were taken. Acquire it before mu.
	saveMu sync.Mutex
	mu     sync.Mutex
	book   *Book
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
		book:    NewBook(nil),
	}
}

// Load replaces the in-memory book with the persisted one.
func (s *Service) Load(ctx context.Context) {
	events, err := s.repo.LoadEvents(ctx)
	if err != nil {
		slog.Warn("failed to load events", "error", err)
		events = nil
	}

	s.mu.Lock()
	s.book = NewBook(events)
	s.mu.Unlock()
}

// Create starts a new draft event. Only one draft may exist at a time.
func (s *Service) Create(ctx context.Context, fields Fields) (Event, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()

	if draft, ok := s.book.ActiveDraft(); ok {
		s.mu.Unlock()
		slog.Warn("rejected second draft event", "active_event", draft.ID)

		return Event{}, ErrDraftExists
	}

	ev, err := New(fields, s.now())
	if err != nil {
		s.mu.Unlock()
		return Event{}, err
	}

	s.book.Append(ev)
	snapshot := s.book.All()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	return ev, nil
}

func (s *Service) Get(id string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.book.Get(id)
	if !ok {
		return Event{}, ErrNotFound
	}

	return ev, nil
}

// Active returns the current draft event, if any.
func (s *Service) Active() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.book.ActiveDraft()
}

func (s *Service) All() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.book.All()
}

func (s *Service) History() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.book.History()
}

func (s *Service) Recent(n int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.book.Recent(n)
}

func (s *Service) Tap(ctx context.Context, id, productID string) (Event, error) {
	return s.apply(ctx, id, func(ev Event) (Event, error) {
		return Tap(ev, productID, s.catalog)
	})
}

func (s *Service) Undo(ctx context.Context, id string) (Event, error) {
	return s.apply(ctx, id, Undo)
}

func (s *Service) SetQuantity(ctx context.Context, id, productID string, qty int) (Event, error) {
	return s.apply(ctx, id, func(ev Event) (Event, error) {
		return SetQuantity(ev, productID, qty, s.catalog)
	})
}

func (s *Service) Finalize(ctx context.Context, id string, rec Reconciliation) (Event, error) {
	return s.apply(ctx, id, func(ev Event) (Event, error) {
		return Finalize(ev, rec)
	})
}

// Preview returns the event as it would look finalized with rec, leaving the
// stored event unchanged.
func (s *Service) Preview(id string, rec Reconciliation) (Event, error) {
	ev, err := s.Get(id)
	if err != nil {
		return Event{}, err
	}

	return Finalize(ev, rec)
}

func (s *Service) apply(ctx context.Context, id string, op func(Event) (Event, error)) (Event, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()

	ev, ok := s.book.Get(id)
	if !ok {
		s.mu.Unlock()
		return Event{}, ErrNotFound
	}

	next, err := op(ev)
	if err != nil {
		s.mu.Unlock()
		return Event{}, err
	}

	s.book.Replace(next)
	snapshot := s.book.All()
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	return next, nil
}

// persist must be called with s.saveMu held.
func (s *Service) persist(ctx context.Context, events []Event) {
	if err := s.repo.SaveEvents(ctx, events); err != nil {
		slog.Warn("failed to persist events", "error", err, "count", len(events))
	}
}
