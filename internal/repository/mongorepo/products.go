// internal/repository/mongorepo/products.go
package mongorepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expiryeaze/expiryeaze-backend/internal/models"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository"
)

type productRepo struct{ base }

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if product.ID == "" {
		product.ID = newID()
	}
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return translate(err)
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *productRepo) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	switch {
	case filter.VendorID != "":
		query["vendor"] = filter.VendorID
	case len(filter.VendorIDs) > 0:
		query["vendor"] = bson.M{"$in": filter.VendorIDs}
	}
	return r.find(ctx, query)
}

func (r *productRepo) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
