package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vendortrack/internal/storage"
	"github.com/MrJamesThe3rd/vendortrack/internal/user"
)

type Store struct {
	backend storage.Backend
}

func New(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// LoadProfile returns nil when no profile has been saved.
func (s *Store) LoadProfile(ctx context.Context) (*user.Profile, error) {
	data, err := s.backend.Get(ctx, storage.KeyUser)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("loading profile: %w", err)
	}

	var p *user.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}

	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p *user.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	if err := s.backend.Put(ctx, storage.KeyUser, data); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	return nil
}
