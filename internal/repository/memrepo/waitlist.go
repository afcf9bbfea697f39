// internal/repository/memrepo/waitlist.go
package memrepo

import (
	"context"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type waitlistRepo struct{ d *db }

func (r *waitlistRepo) Create(_ context.Context, entry *models.WaitlistEntry) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	for _, e := range r.d.waitlist {
		if sameEmail(e.Email, entry.Email) && e.Role == entry.Role {
			return repository.ErrDuplicate
		}
	}
	if entry.ID == "" {
		entry.ID = newID()
	}
	r.d.waitlist[entry.ID] = *entry
	return nil
}

func (r *waitlistRepo) FindByEmailAndRole(_ context.Context, email string, role models.Role) (*models.WaitlistEntry, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, e := range r.d.waitlist {
		if sameEmail(e.Email, email) && e.Role == role {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}
