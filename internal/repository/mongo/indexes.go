package mongo

import (
	"alcyxob/studio-admin/internal/repository"
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsurePlanIndexes creates the indexes used when browsing the catalog.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection, logger logrus.FieldLogger) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("plan_type_name"),
		},
	}
	ensure(ctx, collection, indexes, logger)
}

// EnsureClientIndexes creates indexes on the client roster.
func EnsureClientIndexes(ctx context.Context, collection *mongo.Collection, logger logrus.FieldLogger) {
	indexes := []mongo.IndexModel{
		{
			// Not unique: the store never enforced it and existing data may repeat emails.
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("client_email"),
		},
		{
			// Multikey index over the held plan IDs.
			Keys:    bson.D{{Key: "subscriptionIds", Value: 1}},
			Options: options.Index().SetName("client_subscription_ids"),
		},
	}
	ensure(ctx, collection, indexes, logger)
}

// EnsureIndexes runs every index setup for the studio database.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger logrus.FieldLogger) {
	EnsurePlanIndexes(ctx, db.Collection(repository.PlanCollection), logger)
	EnsureClientIndexes(ctx, db.Collection(repository.ClientCollection), logger)
}

func ensure(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel, logger logrus.FieldLogger) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.WithError(err).WithField("collection", collection.Name()).Warn("Failed to create indexes")
	}
}
