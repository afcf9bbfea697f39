// internal/repository/mongorepo/carts.go
package mongorepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type cartRepo struct{ base }

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

func (r *cartRepo) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var cart models.Cart
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

// AddItem increments an existing line in place. When no line for the product
// exists it pushes one, upserting the cart; the push is guarded so two
// concurrent first adds cannot create duplicate lines.
func (r *cartRepo) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	cart, err := r.increment(ctx, userID, productID, quantity)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return cart, err
	}

	now := time.Now()
	filter := bson.M{"user": userID, "items.product": bson.M{"$ne": productID}}
	update := bson.M{
		"$push": bson.M{"items": models.CartItem{
			ID:        newID(),
			ProductID: productID,
			Quantity:  quantity,
		}},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"_id": newID()},
	}

	var out models.Cart
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if mongo.IsDuplicateKeyError(err) {
		// The cart exists and another request added the line first.
		return r.increment(ctx, userID, productID, quantity)
	}
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *cartRepo) increment(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	filter := bson.M{"user": userID, "items.product": productID}
	update := bson.M{
		"$inc": bson.M{"items.$.quantity": quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var cart models.Cart
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *cartRepo) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	filter := bson.M{"user": userID, "items._id": itemID}
	update := bson.M{
		"$pull": bson.M{"items": bson.M{"_id": itemID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	var cart models.Cart
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *cartRepo) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"items":     []models.CartItem{},
		"updatedAt": time.Now(),
	}}

	var cart models.Cart
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, returnAfter).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}
