package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gbswdev/snackbar/core/order"
)

type orderRepository struct {
	coll *mongo.Collection
}

var _ order.Repository = (*orderRepository)(nil) // interface compliance check

func NewOrderRepository(db *mongo.Database) order.Repository {
	return &orderRepository{coll: db.Collection(ordersCollection)}
}

func (repo *orderRepository) CreateOrder(ctx context.Context, ord order.Order) (order.Order, error) {
	ord.ID = primitive.NewObjectID().Hex()
	if _, err := repo.coll.InsertOne(ctx, ord); err != nil {
		return order.Order{}, errors.Wrap(err, "inserting order")
	}
	return ord, nil
}

func (repo *orderRepository) query(ctx context.Context, filter bson.M) ([]order.Order, error) {
	cur, err := repo.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "querying orders")
	}
	orders := make([]order.Order, 0)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decoding orders")
	}
	return orders, nil
}

func (repo *orderRepository) QueryAllOrders(ctx context.Context) ([]order.Order, error) {
	return repo.query(ctx, bson.M{})
}

func (repo *orderRepository) FilterOrders(ctx context.Context, filter order.QueryFilter) ([]order.Order, error) {
	return repo.query(ctx, bson.M{"studentName": filter.StudentName})
}

func (repo *orderRepository) GetOrderByID(ctx context.Context, id string) (order.Order, error) {
	var ord order.Order
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ord)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return order.Order{}, order.ErrNotFound
		}
		return order.Order{}, errors.Wrap(err, "getting order")
	}
	return ord, nil
}

// SetOrderStatus is a conditional single-document update: it only matches
// while the order is still pending, so concurrent decisions cannot overwrite
// each other. Mongo's document-level atomicity is all the locking there is.
func (repo *orderRepository) SetOrderStatus(ctx context.Context, id, status string, at time.Time) (order.Order, error) {
	var updated order.Order
	err := repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "status": order.StatusPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if err != mongo.ErrNoDocuments {
		return order.Order{}, errors.Wrap(err, "updating order status")
	}

	// no pending match: tell a decided order apart from a missing one
	if _, err := repo.GetOrderByID(ctx, id); err != nil {
		return order.Order{}, err
	}
	return order.Order{}, order.ErrStatusFinal
}

func (repo *orderRepository) PopularMenus(ctx context.Context, limit int) ([]order.MenuCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menu"},
			{Key: "totalQuantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalQuantity", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregating popular menus")
	}
	counts := make([]order.MenuCount, 0, limit)
	if err := cur.All(ctx, &counts); err != nil {
		return nil, errors.Wrap(err, "decoding popular menus")
	}
	return counts, nil
}
