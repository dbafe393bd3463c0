// Package mongodb implements the repositories on top of the MongoDB document
// store. Single-document writes are the only atomicity the app relies on; no
// transaction spans multiple collections.
package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gbswdev/snackbar/core"
)

// Collection names
const (
	itemsCollection  = "items"
	ordersCollection = "orders"
	usersCollection  = "users"
	cheersCollection = "cheers"
)

// Open connects to the configured MongoDB deployment and waits for it to be
// ready. Waits 100ms longer between each attempt.
func Open(conf *core.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}

	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = client.Ping(ctx, readpref.Primary())
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB ping timeout")
	}

	return client.Database(conf.Database.Name), nil
}

// Close disconnects the underlying client.
func Close(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
