// internal/repository/pgrepo/store.go
package pgrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/expiryeaze/expiryeaze-backend/internal/database"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

// New builds a repository.Store over a GORM PostgreSQL handle.
func New(db *gorm.DB) *repository.Store {
	return repository.NewStore(
		&userRepo{db}, &productRepo{db}, &cartRepo{db},
		&orderRepo{db}, &reviewRepo{db}, &waitlistRepo{db},
		func(context.Context) error {
			return database.ClosePostgres(db)
		},
	)
}

// Migrate creates the schema used by the repositories.
func Migrate(db *gorm.DB) error {
	tables := []interface{}{
		&userRow{},
		&productRow{},
		&cartRow{},
		&cartItemRow{},
		&orderRow{},
		&orderItemRow{},
		&reviewRow{},
		&reviewVoteRow{},
		&waitlistRow{},
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_vendor_created ON products(vendor_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_vendor_created ON reviews(vendor_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_vendor_rating ON reviews(vendor_id, rating)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users(LOWER(email))",
	}

	return database.RunMigrations(db, tables, indexes)
}

// invalidTextRepresentation is raised when a value cannot be cast to the
// column type, e.g. "abc" compared against a uuid column.
const invalidTextRepresentation = "22P02"

func newID() string {
	return uuid.NewString()
}

// isID reports whether id could name a row. Key columns are uuid, so
// anything else matches nothing.
func isID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// onlyIDs drops the values isID rejects.
func onlyIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if isID(id) {
			out = append(out, id)
		}
	}
	return out
}

// translate maps GORM errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return repository.ErrNotFound
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
