// Package backend opens the document database selected by configuration.
package backend

import (
	"context"
	"fmt"

	"restaurantdb/pkg/config"
	"restaurantdb/pkg/customer"
	"restaurantdb/pkg/docstore"
	"restaurantdb/pkg/docstore/memory"
	"restaurantdb/pkg/docstore/mongo"
	"restaurantdb/pkg/docstore/postgres"
	"restaurantdb/pkg/feedback"
	"restaurantdb/pkg/menu"
	"restaurantdb/pkg/order"
)

// Logger is the subset of the application logger Open needs.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
}

// Collections lists every collection the stores use.
var Collections = []string{menu.Collection, customer.Collection, order.Collection, feedback.Collection}

// Open connects the configured backend, prepares its collections and wraps
// it with the configured timeout and retry policy. The returned func
// releases the connection.
func Open(ctx context.Context, cfg config.Config, log Logger) (docstore.Database, func(), error) {
	db, closeFn, err := open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return docstore.Resilient(db, Policy(cfg)), closeFn, nil
}

// Policy derives the store policy from cfg.
func Policy(cfg config.Config) docstore.Policy {
	p := docstore.DefaultPolicy()
	if cfg.StoreTimeout > 0 {
		p.Timeout = cfg.StoreTimeout
	}
	if cfg.StoreMaxTries > 0 {
		p.MaxTries = cfg.StoreMaxTries
	}
	return p
}

func open(ctx context.Context, cfg config.Config, log Logger) (docstore.Database, func(), error) {
	switch cfg.Backend {
	case config.BackendMongo:
		mcfg := mongo.DefaultConfig()
		mcfg.URI = cfg.MongoURI
		mcfg.Database = cfg.MongoDatabase
		db, err := mongo.Connect(ctx, mcfg)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		err = db.EnsureIndexes(ctx, map[string]string{
			menu.Collection:     "name",
			customer.Collection: "customer_id",
			order.Collection:    "order_id",
			feedback.Collection: "feedback_id",
		})
		if err != nil {
			db.Close(context.Background())
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info(ctx, "store ready", "backend", cfg.Backend, "database", cfg.MongoDatabase)
		return db, func() { db.Close(context.Background()) }, nil

	case config.BackendPostgres:
		sqlDB, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.DefaultPoolConfig())
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		db := postgres.New(sqlDB)
		if err := db.Migrate(ctx, Collections...); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info(ctx, "store ready", "backend", cfg.Backend)
		return db, func() { sqlDB.Close() }, nil

	case config.BackendMemory:
		log.Warn(ctx, "using in-memory store, data is lost on exit")
		return memory.New(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
