// internal/database/mongodb.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expiryeaze/expiryeaze-backend/internal/config"
	"github.com/expiryeaze/expiryeaze-backend/internal/repository/mongorepo"
)

func InitializeMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the database
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logrus.WithField("database", cfg.Database).Info("MongoDB connection established")
	return client, client.Database(cfg.Database), nil
}

// EnsureMongoIndexes creates the unique keys the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		mongorepo.UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
		mongorepo.ProductsCollection: {
			{Keys: bson.D{{Key: "vendor", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		mongorepo.CartsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: unique},
		},
		mongorepo.OrdersCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		mongorepo.ReviewsCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "vendor", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "vendor", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		mongorepo.WaitlistCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}}, Options: unique},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
