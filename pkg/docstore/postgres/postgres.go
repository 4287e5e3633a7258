// Package postgres persists documents as JSONB rows in PostgreSQL, one
// table per collection.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/v2/bson"

	"restaurantdb/pkg/docstore"
)

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPoolConfig returns the pool settings used by the binaries.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifetime: time.Hour}
}

// Open connects to dsn, sizes the pool and checks the server answers.
func Open(ctx context.Context, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := Prepare(ctx, db, pool); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Prepare applies pool to db and pings it.
func Prepare(ctx context.Context, db *sql.DB, pool PoolConfig) error {
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", classify(err))
	}
	return nil
}

// Database persists collections in PostgreSQL.
type Database struct {
	db *sql.DB
}

// New creates a PostgreSQL document database. Every collection used must
// have a table, see Migrate.
func New(db *sql.DB) *Database {
	return &Database{db: db}
}

// Migrate creates the table backing each named collection:
// CREATE TABLE IF NOT EXISTS "<name>" (id BIGSERIAL PRIMARY KEY, doc JSONB NOT NULL);
func (d *Database) Migrate(ctx context.Context, names ...string) error {
	for _, name := range names {
		q := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id BIGSERIAL PRIMARY KEY, doc JSONB NOT NULL)", pq.QuoteIdentifier(name))
		if _, err := d.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table %s: %w", name, classify(err))
		}
	}
	return nil
}

// Collection returns the named collection.
func (d *Database) Collection(name string) docstore.Collection {
	return &Collection{db: d.db, table: pq.QuoteIdentifier(name)}
}

// Collection stores documents in a single table. The first match of a
// filter is the matching row with the lowest id.
type Collection struct {
	db    *sql.DB
	table string
}

// InsertOne inserts the document.
func (c *Collection) InsertOne(ctx context.Context, doc any) error {
	data, err := encode(doc)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, "INSERT INTO "+c.table+" (doc) VALUES ($1)", data)
	return classify(err)
}

// FindOne decodes the first matching document into out.
func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	f, err := encode(filter)
	if err != nil {
		return err
	}
	var data []byte
	err = c.db.QueryRowContext(ctx,
		"SELECT doc FROM "+c.table+" WHERE doc @> $1 ORDER BY id LIMIT 1", f).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.ErrNoDocument
	}
	if err != nil {
		return classify(err)
	}
	return bson.UnmarshalExtJSON(data, false, out)
}

// UpdateOne merges the fields of set into the first match.
func (c *Collection) UpdateOne(ctx context.Context, filter docstore.Filter, set docstore.Set) (bool, error) {
	f, err := encode(filter)
	if err != nil {
		return false, err
	}
	s, err := encode(set)
	if err != nil {
		return false, err
	}
	res, err := c.db.ExecContext(ctx,
		"UPDATE "+c.table+" SET doc = doc || $2 WHERE id = (SELECT id FROM "+c.table+" WHERE doc @> $1 ORDER BY id LIMIT 1)", f, s)
	return affected(res, err)
}

// DeleteOne removes the first match.
func (c *Collection) DeleteOne(ctx context.Context, filter docstore.Filter) (bool, error) {
	f, err := encode(filter)
	if err != nil {
		return false, err
	}
	res, err := c.db.ExecContext(ctx,
		"DELETE FROM "+c.table+" WHERE id = (SELECT id FROM "+c.table+" WHERE doc @> $1 ORDER BY id LIMIT 1)", f)
	return affected(res, err)
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// encode renders v as relaxed extended JSON so field names follow the bson
// tags used by every backend. The result is sent as text; lib/pq would
// send a []byte as bytea.
func encode(v any) (string, error) {
	data, err := bson.MarshalExtJSON(v, false, false)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	return string(data), nil
}

// classify marks connection failures as docstore.ErrUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	var pqErr *pq.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	case errors.As(err, &pqErr) && pqErr.Code.Class() == "08":
		return fmt.Errorf("%w: %v", docstore.ErrUnavailable, err)
	default:
		return err
	}
}

var _ docstore.Database = (*Database)(nil)
var _ docstore.Collection = (*Collection)(nil)
