// Package kvstore persists small JSON documents under string keys.
//
// The draft board keeps its local state (custom ranks, pick assignments,
// watchlist) in one of these stores. Every backend honours the same
// contract: Get on a missing key returns ErrNotFound, Set overwrites, and
// Clear on a missing key is not an error.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var ErrNotFound = errors.New("kvstore: key not found")

// Store is a last-write-wins key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// Closer is implemented by backends that hold connections or files.
type Closer interface {
	Close() error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_=\-.]+$`)

// ValidateKey rejects keys that some backend cannot store verbatim
// (path separators for the file store, wildcards for NATS KV).
func ValidateKey(key string) error {
	if key == "" || !validKey.MatchString(key) || key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("kvstore: invalid key %q", key)
	}
	return nil
}

// GetJSON loads key and decodes it into out. found is false when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, out any) (found bool, err error) {
	b, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, b)
}

// Prefixed scopes every key of the wrapped store under prefix + ".".
type Prefixed struct {
	Store
	prefix string
}

func NewPrefixed(s Store, prefix string) *Prefixed {
	return &Prefixed{Store: s, prefix: prefix}
}

func (p *Prefixed) key(k string) string {
	if p.prefix == "" {
		return k
	}
	return p.prefix + "." + k
}

func (p *Prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.Store.Get(ctx, p.key(key))
}

func (p *Prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.Store.Set(ctx, p.key(key), value)
}

func (p *Prefixed) Clear(ctx context.Context, key string) error {
	return p.Store.Clear(ctx, p.key(key))
}
