package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gbswdev/snackbar/core/cheer"
)

type cheerRepository struct {
	coll *mongo.Collection
}

var _ cheer.Repository = (*cheerRepository)(nil) // interface compliance check

func NewCheerRepository(db *mongo.Database) cheer.Repository {
	return &cheerRepository{coll: db.Collection(cheersCollection)}
}

func (repo *cheerRepository) CreateCheer(ctx context.Context, ch cheer.Cheer) (cheer.Cheer, error) {
	ch.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, ch); err != nil {
		return cheer.Cheer{}, errors.Wrap(err, "inserting cheer")
	}
	return ch, nil
}

func (repo *cheerRepository) QueryCheersBetween(ctx context.Context, target string, from, to time.Time) ([]cheer.Cheer, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": from, "$lte": to}}
	if target != "" {
		filter["target"] = target
	}

	cur, err := repo.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "querying cheers")
	}
	cheers := make([]cheer.Cheer, 0)
	if err := cur.All(ctx, &cheers); err != nil {
		return nil, errors.Wrap(err, "decoding cheers")
	}
	return cheers, nil
}
