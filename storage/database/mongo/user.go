package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gbswdev/snackbar/core/user"
)

type userRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (repo *userRepository) CheckIDUniqueness(ctx context.Context, id string) error {
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == nil {
		return user.ErrIDExists
	}
	if err == mongo.ErrNoDocuments {
		return nil
	}
	return errors.Wrap(err, "checking id uniqueness")
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if _, err := repo.coll.InsertOne(ctx, usr); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrIDExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryUsersByRole(ctx context.Context, role string) ([]user.User, error) {
	cur, err := repo.coll.Find(
		ctx,
		bson.M{"role": role},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	return users, nil
}

func (repo *userRepository) GetUser(ctx context.Context, role, id string) (user.User, error) {
	var usr user.User
	err := repo.coll.FindOne(ctx, bson.M{"_id": id, "role": role}).Decode(&usr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	// only save set fields
	set := bson.M{
		"name":      usr.Name,
		"category":  usr.Category,
		"email":     usr.Email,
		"updatedAt": usr.UpdatedAt,
	}
	if usr.Grade != 0 {
		set["grade"] = usr.Grade
	}
	if usr.Number != 0 {
		set["number"] = usr.Number
	}
	if usr.Department != "" {
		set["department"] = usr.Department
	}
	if usr.PasswordHash != nil {
		set["passwordHash"] = usr.PasswordHash
	}

	var updated user.User
	err := repo.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": usr.ID, "role": usr.Role},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return updated, nil
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, role string, ids ...string) error {
	_, err := repo.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}, "role": role})
	return errors.Wrap(err, "deleting users")
}
