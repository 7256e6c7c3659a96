package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	LoadProducts(ctx context.Context) ([]Product, error)
	SaveProducts(ctx context.Context, products []Product) error
}

// Service owns the in-memory product list. The list is authoritative for the
// session; saves are best effort and failures are only logged.
type Service struct {
	repo Repository

	// saveMu serializes mutations with their save. Acquire it before mu.
	saveMu   sync.Mutex
	mu       sync.RWMutex
	products []Product
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load replaces the in-memory list with the persisted one. A failed or empty
// load leaves an empty catalog, which is the expected first-run state.
func (s *Service) Load(ctx context.Context) {
	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		slog.Warn("failed to load products", "error", err)
		products = nil
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
}

func (s *Service) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products)
}

func (s *Service) Active() []Product {
	return s.filter(func(p Product) bool { return p.Active })
}

func (s *Service) Inactive() []Product {
	return s.filter(func(p Product) bool { return !p.Active })
}

// Search returns active products matching the name query and category.
func (s *Service) Search(query, category string) []Product {
	return s.filter(func(p Product) bool { return p.Active && p.Matches(query, category) })
}

func (s *Service) filter(keep func(Product) bool) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product

	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}

	return out
}

// Lookup returns the product with the given id, active or not.
func (s *Service) Lookup(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false
	}

	return s.products[i], true
}

func (s *Service) Get(id string) (Product, error) {
	p, ok := s.Lookup(id)
	if !ok {
		return Product{}, ErrNotFound
	}

	return p, nil
}

// Upsert replaces the product with the same id or appends a new one.
// A blank id is assigned a fresh one.
func (s *Service) Upsert(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.products[i] = p
	} else {
		s.products = append(s.products, p)
	}

	snapshot := slices.Clone(s.products)
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	return p, nil
}

// ImportBatch validates every product first and then upserts them all.
// Incoming products without an id are matched to existing ones by name
// (case-insensitive) so re-importing the same sheet updates instead of duplicating.
func (s *Service) ImportBatch(ctx context.Context, products []Product) ([]Product, error) {
	for i := range products {
		if err := products[i].Validate(); err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i+1, products[i].Name, err)
		}
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()

	saved := make([]Product, 0, len(products))

	for _, p := range products {
		if p.ID == "" {
			p.ID = s.idByName(p.Name)
		}

		if i := s.indexOf(p.ID); p.ID != "" && i >= 0 {
			s.products[i] = p
		} else {
			if p.ID == "" {
				p.ID = uuid.NewString()
			}

			s.products = append(s.products, p)
		}

		saved = append(saved, p)
	}

	snapshot := slices.Clone(s.products)
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()

	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}

	s.products = slices.Delete(s.products, i, i+1)
	snapshot := slices.Clone(s.products)
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	return nil
}

// persist must be called with s.saveMu held.
func (s *Service) persist(ctx context.Context, products []Product) {
	if err := s.repo.SaveProducts(ctx, products); err != nil {
		slog.Warn("failed to persist products", "error", err, "count", len(products))
	}
}

// indexOf must be called with s.mu held.
func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}

// idByName must be called with s.mu held.
func (s *Service) idByName(name string) string {
	for _, p := range s.products {
		if strings.EqualFold(p.Name, name) {
			return p.ID
		}
	}

	return ""
}
