package repos

import (
	"context"
	"fmt"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

type CartRepo struct{ st kv.Store }

func NewCartRepo(st kv.Store) *CartRepo { return &CartRepo{st: st} }

// Load returns the persisted cart, normalized: an unset quantity reads as 1,
// negative lines are dropped and repeated ids are merged into the first line.
func (r *CartRepo) Load(ctx context.Context) ([]domain.CartLine, error) {
	var raw []domain.CartLine
	if _, err := readDoc(ctx, r.st, KeyCart, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.CartLine, 0, len(raw))
	pos := make(map[int64]int, len(raw))
	for _, l := range raw {
		if l.ID <= 0 {
			return nil, &domain.DecodeError{Key: KeyCart, Err: fmt.Errorf("line with id %d", l.ID)}
		}
		if l.Quantity < 0 {
			continue
		}
		if l.Quantity == 0 {
			l.Quantity = 1
		}
		if i, ok := pos[l.ID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		pos[l.ID] = len(out)
		out = append(out, l)
	}
	return out, nil
}

func (r *CartRepo) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return writeDoc(ctx, r.st, KeyCart, lines)
}

// Clear removes the cart key itself.
func (r *CartRepo) Clear(ctx context.Context) error {
	return r.st.Remove(ctx, KeyCart)
}
