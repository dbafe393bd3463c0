package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gbswdev/snackbar/core/item"
)

type itemRepository struct {
	coll *mongo.Collection
}

var _ item.Repository = (*itemRepository)(nil) // interface compliance check

func NewItemRepository(db *mongo.Database) item.Repository {
	return &itemRepository{coll: db.Collection(itemsCollection)}
}

func (repo *itemRepository) CreateItem(ctx context.Context, it item.Item) (item.Item, error) {
	it.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, it); err != nil {
		return item.Item{}, errors.Wrap(err, "inserting item")
	}
	return it, nil
}

func (repo *itemRepository) QueryAllItems(ctx context.Context) ([]item.Item, error) {
	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "querying items")
	}
	items := make([]item.Item, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "decoding items")
	}
	return items, nil
}

func (repo *itemRepository) GetItemByID(ctx context.Context, id string) (item.Item, error) {
	var it item.Item
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&it)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return item.Item{}, item.ErrNotFound
		}
		return item.Item{}, errors.Wrap(err, "getting item")
	}
	return it, nil
}

func (repo *itemRepository) UpdateItem(ctx context.Context, it item.Item, stock *bool) (item.Item, error) {
	set := bson.M{
		"name":  it.Name,
		"type":  it.Type,
		"image": it.Image,
	}
	if stock != nil {
		set["stock"] = *stock
	}

	var updated item.Item
	err := repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": it.ID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return item.Item{}, item.ErrNotFound
		}
		return item.Item{}, errors.Wrap(err, "updating item")
	}
	return updated, nil
}

func (repo *itemRepository) DeleteItemsByID(ctx context.Context, ids ...string) error {
	_, err := repo.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return errors.Wrap(err, "deleting items")
}
