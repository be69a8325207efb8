package repos

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

type FavoritesRepo struct{ st kv.Store }

func NewFavoritesRepo(st kv.Store) *FavoritesRepo { return &FavoritesRepo{st: st} }

// List returns the persisted favorites, first occurrence wins on repeated ids.
func (r *FavoritesRepo) List(ctx context.Context) ([]domain.Product, error) {
	var raw []domain.Product
	if _, err := readDoc(ctx, r.st, KeyFavorites, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for _, p := range raw {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}

func (r *FavoritesRepo) Save(ctx context.Context, items []domain.Product) error {
	if items == nil {
		items = []domain.Product{}
	}
	return writeDoc(ctx, r.st, KeyFavorites, items)
}
