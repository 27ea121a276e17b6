// Package localmirror keeps a local copy of remote state so the client
// keeps working when the server is unreachable: reads fall through to
// the mirror on remote failure, and every successful remote read or
// local mutation is written through to the mirror.
package localmirror

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Mirror is a typed view over a Store key.
type Mirror[T any] struct {
	store  Store
	key    string
	logger *zap.Logger
}

// New creates a Mirror for one key.
func New[T any](store Store, key string, logger *zap.Logger) *Mirror[T] {
	return &Mirror[T]{
		store:  store,
		key:    key,
		logger: logger.Named("Mirror").With(zap.String("key", key)),
	}
}

// Fetch calls remote; on success the value is written through to the
// mirror, on failure the last mirrored value is returned instead. The
// remote error is only surfaced when there is no mirrored value either.
func (m *Mirror[T]) Fetch(remote func() (T, error)) (T, error) {
	value, err := remote()
	if err == nil {
		if putErr := m.Put(value); putErr != nil {
			m.logger.Warn("Failed to write through to mirror", zap.Error(putErr))
		}
		return value, nil
	}

	m.logger.Warn("Remote fetch failed, falling back to mirror", zap.Error(err))
	cached, cacheErr := m.Get()
	if cacheErr != nil {
		var zero T
		return zero, fmt.Errorf("remote failed and no mirrored value: %w", err)
	}
	return cached, nil
}

// Get returns the mirrored value.
func (m *Mirror[T]) Get() (T, error) {
	var value T
	data, err := m.store.Load(m.key)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("corrupted mirror data for %s: %w", m.key, err)
	}
	return value, nil
}

// Put writes a value through to the mirror.
func (m *Mirror[T]) Put(value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal mirror value for %s: %w", m.key, err)
	}
	return m.store.Save(m.key, data)
}

// Clear removes the mirrored value.
func (m *Mirror[T]) Clear() error {
	return m.store.Delete(m.key)
}
