package summary

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pathwise/pathwise/internal/models"
)

// MongoBaseline loads the seed dataset from a Mongo collection of summary
// rows (written once by cmd/seed). The collection is treated as read-only.
type MongoBaseline struct {
	col *mongo.Collection
}

func NewMongoBaseline(col *mongo.Collection) *MongoBaseline {
	return &MongoBaseline{col: col}
}

func (b *MongoBaseline) Load(ctx context.Context) ([]models.UserSummary, error) {
	cur, err := b.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.UserSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
