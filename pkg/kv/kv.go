// Package kv is the persisted key-value blob store the storefront keeps its
// state in. The store is origin-shared: another session may rewrite a key at
// any time, so consumers that cache a key in memory should Subscribe and
// reload on notification rather than assume they are the sole writer.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

// Well-known keys.
const (
	KeyCart      = "cart"
	KeyOrders    = "orders"
	KeyFavorites = "favorites"
	KeyTheme     = "theme"
	KeyAdminMode = "admin_mode"
)

type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Subscribe registers fn to run when key is changed by a writer other
	// than this store instance. The returned func cancels the subscription.
	// Callbacks only fire while Watch is running.
	Subscribe(key string, fn func(key string)) (cancel func())

	// Watch blocks delivering external-change notifications until ctx is done.
	Watch(ctx context.Context) error
}
