// Package mongo persists documents in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"restaurantdb/pkg/docstore"
)

// Config holds the connection settings.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// DefaultConfig returns a configuration for a local server.
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017",
		Database:       "RestaurantDB",
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    100,
	}
}

// Database wraps one MongoDB database. The underlying client is pooled and
// safe for concurrent use.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client and verifies the server answers.
func Connect(ctx context.Context, cfg Config) (*Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", classify(err))
	}

	return &Database{client: client, db: client.Database(cfg.Database)}, nil
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Collection returns the named collection.
func (d *Database) Collection(name string) docstore.Collection {
	return &Collection{coll: d.db.Collection(name)}
}

// EnsureIndexes creates a non-unique ascending index on each lookup field.
func (d *Database) EnsureIndexes(ctx context.Context, fields map[string]string) error {
	for name, field := range fields {
		_, err := d.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("index %s.%s: %w", name, field, classify(err))
		}
	}
	return nil
}

// Collection is a docstore.Collection backed by a MongoDB collection.
type Collection struct {
	coll *mongo.Collection
}

// InsertOne inserts the document.
func (c *Collection) InsertOne(ctx context.Context, doc any) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return classify(err)
	}
	return nil
}

// FindOne decodes the first matching document into out.
func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	err := c.coll.FindOne(ctx, bson.M(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.ErrNoDocument
	}
	return classify(err)
}

// UpdateOne applies a $set of the given fields to the first match.
func (c *Collection) UpdateOne(ctx context.Context, filter docstore.Filter, set docstore.Set) (bool, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M(filter), bson.M{"$set": bson.M(set)})
	if err != nil {
		return false, classify(err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteOne removes the first match.
func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M(filter))
	if err != nil {
		return false, classify(err)
	}
	return res.DeletedCount > 0, nil
}

// classify marks transport failures as docstore.ErrUnavailable.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	default:
		return err
	}
}

var _ docstore.Database = (*Database)(nil)
var _ docstore.Collection = (*Collection)(nil)
