// Package identity resolves player display names to uuids and back.
// The game server provides the real implementation; InMemory backs
// tests and standalone runs.
package identity

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrPlayerNotFound indicates that no player matches the given name or uuid.
var ErrPlayerNotFound = errors.New("player not found")

// Resolver is the player identity boundary contract.
type Resolver interface {
	UUIDByName(ctx context.Context, name string) (string, error)
	NameByUUID(ctx context.Context, uuid string) (string, error)
}

// InMemory is a Resolver backed by a map.
type InMemory struct {
	mu     sync.RWMutex
	byName map[string]string
	byUUID map[string]string
}

// NewInMemory returns an empty in-memory resolver.
func NewInMemory() *InMemory {
	return &InMemory{
		byName: make(map[string]string),
		byUUID: make(map[string]string),
	}
}

// Register adds a player and returns the generated uuid.
func (r *InMemory) Register(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byName[name]; ok {
		return id
	}

	id := uuid.NewString()
	r.byName[name] = id
	r.byUUID[id] = name

	return id
}

// UUIDByName returns the uuid for a display name.
func (r *InMemory) UUIDByName(ctx context.Context, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return "", ErrPlayerNotFound
	}

	return id, nil
}

// NameByUUID returns the display name for a uuid.
func (r *InMemory) NameByUUID(ctx context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byUUID[id]
	if !ok {
		return "", ErrPlayerNotFound
	}

	return name, nil
}
