// internal/repository/mongorepo/waitlist.go
package mongorepo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
)

type waitlistRepo struct{ base }

func (r *waitlistRepo) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if entry.ID == "" {
		entry.ID = newID()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return translate(err)
	}
	return nil
}

func (r *waitlistRepo) FindByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.WaitlistEntry, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var entry models.WaitlistEntry
	if err := r.coll.FindOne(ctx, bson.M{"email": email, "role": role}).Decode(&entry); err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}
