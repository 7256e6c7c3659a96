package user

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	LoadProfile(ctx context.Context) (*Profile, error)
	SaveProfile(ctx context.Context, p *Profile) error
}

type Service struct {
	repo Repository
	now  func() time.Time

	mu      sync.RWMutex
	profile *Profile
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Load reads the saved profile. A failed read leaves the operator signed out.
func (s *Service) Load(ctx context.Context) {
	p, err := s.repo.LoadProfile(ctx)
	if err != nil {
		slog.Warn("failed to load profile", "error", err)
		p = nil
	}

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

// Current returns the signed-in profile.
func (s *Service) Current() (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return Profile{}, ErrNoProfile
	}

	return *s.profile, nil
}

// SignIn stores name as the operator's display name.
func (s *Service) SignIn(ctx context.Context, name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, ErrInvalidName
	}

	p := &Profile{Name: name, CreatedAt: s.now().UTC()}

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		slog.Warn("failed to persist profile", "error", err)
	}

	return *p, nil
}
