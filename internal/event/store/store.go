package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	"github.com/MrJamesThe3rd/vendortrack/internal/storage"
)

// Store persists the whole event book as one JSON array.
type Store struct {
	backend storage.Backend
}

func New(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) LoadEvents(ctx context.Context) ([]event.Event, error) {
	data, err := s.backend.Get(ctx, storage.KeyEvents)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("loading events: %w", err)
	}

	var events []event.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}

	return events, nil
}

func (s *Store) SaveEvents(ctx context.Context, events []event.Event) error {
	if events == nil {
		events = []event.Event{}
	}

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	if err := s.backend.Put(ctx, storage.KeyEvents, data); err != nil {
		return fmt.Errorf("saving events: %w", err)
	}

	return nil
}
