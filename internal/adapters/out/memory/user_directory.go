package memory

import (
	"context"
	"sync"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
)

// UserDirectory is a fixed set of user profiles.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[kernel.UUID]ports.UserProfile
}

func NewUserDirectory(profiles ...ports.UserProfile) *UserDirectory {
	d := &UserDirectory{users: make(map[kernel.UUID]ports.UserProfile, len(profiles))}
	for _, p := range profiles {
		d.users[p.ID] = p
	}
	return d
}

func (d *UserDirectory) Put(profile ports.UserProfile) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[profile.ID] = profile
}

func (d *UserDirectory) Lookup(_ context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.UserProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	found := make(map[kernel.UUID]ports.UserProfile, len(ids))
	for _, id := range ids {
		if p, ok := d.users[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}
