package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	"github.com/MrJamesThe3rd/vendortrack/internal/storage"
)

// Store persists the whole product list as one JSON array.
type Store struct {
	backend storage.Backend
}

func New(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) LoadProducts(ctx context.Context) ([]catalog.Product, error) {
	data, err := s.backend.Get(ctx, storage.KeyProducts)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("loading products: %w", err)
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	return products, nil
}

func (s *Store) SaveProducts(ctx context.Context, products []catalog.Product) error {
	if products == nil {
		products = []catalog.Product{}
	}

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encoding products: %w", err)
	}

	if err := s.backend.Put(ctx, storage.KeyProducts, data); err != nil {
		return fmt.Errorf("saving products: %w", err)
	}

	return nil
}
