package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"restaurantdb/pkg/otel"
)

// Policy bounds every collection operation.
type Policy struct {
	Timeout         time.Duration
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:         5 * time.Second,
		MaxTries:        3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
	}
}

// Resilient wraps db so that each operation runs under p's timeout inside
// its own span. FindOne and UpdateOne are retried while they fail with
// ErrUnavailable. InsertOne and DeleteOne run once: a failed attempt may
// already have been applied. An expired deadline is reported as
// ErrUnavailable.
func Resilient(db Database, p Policy) Database {
	return &resilientDB{db: db, policy: p}
}

type resilientDB struct {
	db     Database
	policy Policy
}

func (r *resilientDB) Collection(name string) Collection {
	return &resilientCollection{name: name, coll: r.db.Collection(name), policy: r.policy}
}

type resilientCollection struct {
	name   string
	coll   Collection
	policy Policy
}

func (c *resilientCollection) InsertOne(ctx context.Context, doc any) error {
	ctx, end := c.begin(ctx, "InsertOne")
	err := timedOut(c.coll.InsertOne(ctx, doc))
	end(err)
	return err
}

func (c *resilientCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	ctx, end := c.begin(ctx, "FindOne")
	_, err := retry(ctx, c.policy, func() (struct{}, error) {
		return struct{}{}, c.coll.FindOne(ctx, filter, out)
	})
	if errors.Is(err, ErrNoDocument) {
		end(nil)
	} else {
		end(err)
	}
	return err
}

func (c *resilientCollection) UpdateOne(ctx context.Context, filter Filter, set Set) (bool, error) {
	ctx, end := c.begin(ctx, "UpdateOne")
	matched, err := retry(ctx, c.policy, func() (bool, error) {
		return c.coll.UpdateOne(ctx, filter, set)
	})
	end(err)
	return matched, err
}

func (c *resilientCollection) DeleteOne(ctx context.Context, filter Filter) (bool, error) {
	ctx, end := c.begin(ctx, "DeleteOne")
	deleted, err := c.coll.DeleteOne(ctx, filter)
	err = timedOut(err)
	end(err)
	return deleted, err
}

func (c *resilientCollection) begin(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, span := otel.AddSpan(ctx, "docstore."+op,
		attribute.String("db.collection", c.name))

	cancel := context.CancelFunc(func() {})
	if c.policy.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
	}

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		cancel()
		span.End()
	}
}

func retry[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	tries := p.MaxTries
	if tries == 0 {
		tries = 1
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	var last error
	v, err := backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		err = timedOut(err)
		last = err
		if err != nil && !errors.Is(err, ErrUnavailable) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(tries))

	// Retry returns the bare context error when the deadline passes
	// between attempts.
	if err != nil && !errors.Is(err, ErrUnavailable) && isContextErr(err) {
		if errors.Is(last, ErrUnavailable) {
			return v, last
		}
		return v, timedOut(err)
	}
	return v, err
}

// timedOut marks an expired deadline as ErrUnavailable.
func timedOut(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
