package repos

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

type UserRepo struct{ st kv.Store }

func NewUserRepo(st kv.Store) *UserRepo { return &UserRepo{st: st} }

func (r *UserRepo) Get(ctx context.Context) (domain.Account, bool, error) {
	var a domain.Account
	ok, err := readDoc(ctx, r.st, KeyUser, &a)
	return a, ok, err
}

func (r *UserRepo) Save(ctx context.Context, a domain.Account) error {
	a.Password = ""
	return writeDoc(ctx, r.st, KeyUser, a)
}

// SavedEmail is stored as a raw string, not a JSON document.
func (r *UserRepo) SavedEmail(ctx context.Context) (string, bool, error) {
	b, ok, err := r.st.Get(ctx, KeySavedEmail)
	if err != nil || !ok {
		return "", false, err
	}
	return string(b), true, nil
}

// Remember stores the email and drops any password a previous version left behind.
func (r *UserRepo) Remember(ctx context.Context, email string) error {
	return r.st.Apply(ctx, kv.NewBatch().Set(KeySavedEmail, []byte(email)).Remove(KeySavedPassword))
}

func (r *UserRepo) Forget(ctx context.Context) error {
	return r.st.Apply(ctx, kv.NewBatch().Remove(KeySavedEmail).Remove(KeySavedPassword))
}
