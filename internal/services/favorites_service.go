package services

import (
	"context"
	"sync"

	"shopfront/internal/domain"
	"shopfront/internal/events"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
)

// FavoritesService reads and rewrites the whole favorites document on every
// call. Cached keeps the last list seen for cheap reads.
type FavoritesService struct {
	Repo *repos.FavoritesRepo
	Bus  *events.Bus

	mu    sync.Mutex
	cache []domain.Product
}

func NewFavoritesService(r *repos.FavoritesRepo, bus *events.Bus) *FavoritesService {
	return &FavoritesService{Repo: r, Bus: bus}
}

func (s *FavoritesService) List(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.Repo.List(ctx)
	if err != nil {
		applog.Error(nil, "favorites.list.fail", err, nil)
		return nil, err
	}
	s.cache = items
	return append([]domain.Product(nil), items...), nil
}

func (s *FavoritesService) IsFavorite(ctx context.Context, id int64) (bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return containsProduct(items, id), nil
}

// AddFavorite reports whether p was added. An id already present is a no-op.
func (s *FavoritesService) AddFavorite(ctx context.Context, p domain.Product) (bool, error) {
	s.mu.Lock()
	items, err := s.Repo.List(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if containsProduct(items, p.ID) {
		s.cache = items
		s.mu.Unlock()
		return false, nil
	}
	next := append(items, p)
	if err := s.Repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		applog.Error(nil, "favorites.add.fail", err, map[string]any{"product": p.ID})
		return false, err
	}
	s.cache = next
	s.mu.Unlock()
	s.publish()
	return true, nil
}

// RemoveFavorite reports whether anything was removed. Nothing is written or
// published for an absent id.
func (s *FavoritesService) RemoveFavorite(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	items, err := s.Repo.List(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	next := make([]domain.Product, 0, len(items))
	for _, p := range items {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(items) {
		s.cache = items
		s.mu.Unlock()
		return false, nil
	}
	if err := s.Repo.Save(ctx, next); err != nil {
		s.mu.Unlock()
		applog.Error(nil, "favorites.remove.fail", err, map[string]any{"product": id})
		return false, err
	}
	s.cache = next
	s.mu.Unlock()
	s.publish()
	return true, nil
}

// ToggleFavorite returns the membership after the call.
func (s *FavoritesService) ToggleFavorite(ctx context.Context, p domain.Product) (bool, error) {
	on, err := s.IsFavorite(ctx, p.ID)
	if err != nil {
		return false, err
	}
	if on {
		_, err = s.RemoveFavorite(ctx, p.ID)
		return false, err
	}
	if _, err := s.AddFavorite(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoritesService) Cached() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.cache...)
}

func (s *FavoritesService) publish() {
	if s.Bus != nil {
		s.Bus.Publish(events.FavoritesChanged, nil)
	}
}

func containsProduct(items []domain.Product, id int64) bool {
	for _, p := range items {
		if p.ID == id {
			return true
		}
	}
	return false
}
