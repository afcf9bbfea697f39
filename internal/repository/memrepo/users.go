// internal/repository/memrepo/users.go
package memrepo

import (
	"context"
	"sort"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type userRepo struct{ d *db }

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	for _, u := range r.d.users {
		if sameEmail(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	r.d.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	u, ok := r.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	for _, u := range r.d.users {
		if sameEmail(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.d.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *userRepo) FindByRole(_ context.Context, role models.Role) ([]models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()

	var out []models.User
	for _, u := range r.d.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *userRepo) UpdateProfile(_ context.Context, user *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	current, ok := r.d.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.d.users {
		if id != user.ID && sameEmail(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}

	updated := *user
	updated.PasswordHash = current.PasswordHash
	updated.RatingSummary = current.RatingSummary
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.d.now()
	r.d.users[user.ID] = updated
	user.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *userRepo) UpdateRatingSummary(_ context.Context, userID string, summary models.RatingSummary) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()

	u, ok := r.d.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.RatingSummary = summary
	r.d.users[userID] = u
	return nil
}

func sortByCreated(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}
