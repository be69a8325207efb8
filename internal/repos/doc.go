package repos

import (
	"context"
	"encoding/json"

	"shopfront/internal/domain"
	"shopfront/internal/kv"
)

// Storage keys. Each holds one JSON document that is read and written whole.
const (
	KeyFavorites     = "favorites"
	KeyCart          = "cart"
	KeyAddress       = "userAddress"
	KeyOrderHistory  = "orderHistory"
	KeyUser          = "user"
	KeySavedEmail    = "savedEmail"
	KeySavedPassword = "savedPassword"
)

// readDoc returns false when key is absent. A shape mismatch is a DecodeError.
func readDoc[T any](ctx context.Context, st kv.Store, key string, out *T) (bool, error) {
	b, ok, err := st.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, &domain.DecodeError{Key: key, Err: err}
	}
	return true, nil
}

func encodeDoc(key string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &domain.StorageError{Op: "encode", Key: key, Err: err}
	}
	return b, nil
}

func writeDoc(ctx context.Context, st kv.Store, key string, v any) error {
	b, err := encodeDoc(key, v)
	if err != nil {
		return err
	}
	return st.Set(ctx, key, b)
}
