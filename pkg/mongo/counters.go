package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NextSequence atomically increments and returns the named counter. Order
// and ticket numbers come from here so they stay small sequential integers.
func NextSequence(ctx context.Context, name string) (int64, error) {
	collection := GetCollection("counters")

	filter := bson.D{{Key: "_id", Value: name}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result struct {
		Seq int64 `bson:"seq"`
	}
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to advance %s counter: %w", name, err)
	}
	return result.Seq, nil
}
