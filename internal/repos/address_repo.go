package repos

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

type AddressRepo struct{ st kv.Store }

func NewAddressRepo(st kv.Store) *AddressRepo { return &AddressRepo{st: st} }

func (r *AddressRepo) Get(ctx context.Context) (domain.Address, bool, error) {
	var a domain.Address
	ok, err := readDoc(ctx, r.st, KeyAddress, &a)
	return a, ok, err
}

// Save overwrites the single stored address.
func (r *AddressRepo) Save(ctx context.Context, a domain.Address) error {
	return writeDoc(ctx, r.st, KeyAddress, a)
}
