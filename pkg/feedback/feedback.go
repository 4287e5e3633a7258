// Package feedback manages customer feedback. Feedback is immutable once
// recorded: it can be viewed and deleted but never updated.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"restaurantdb/pkg/docstore"
)

// Collection is the name of the collection feedback lives in.
const Collection = "CustomerFeedback"

// Expected rating bounds. They are advisory; Add does not enforce them.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback represents a rating and comment left by a customer.
type Feedback struct {
	ID         string    `json:"feedback_id" bson:"feedback_id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	Date       time.Time `json:"feedback_date" bson:"feedback_date"`
	Rating     float64   `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
}

// InExpectedRange reports whether the rating lies within MinRating and
// MaxRating.
func (f Feedback) InExpectedRange() bool {
	return f.Rating >= MinRating && f.Rating <= MaxRating
}

// ErrInvalid indicates feedback input failed validation.
var ErrInvalid = errors.New("invalid feedback")

// Store persists feedback.
type Store struct {
	coll  docstore.Collection
	newID func() string
	now   func() time.Time
}

// NewStore returns a Store over the feedback collection of db.
func NewStore(db docstore.Database) *Store {
	return &Store{coll: db.Collection(Collection), newID: uuid.NewString, now: time.Now}
}

// Add records feedback from customerID and returns it. Any finite rating
// is accepted.
func (s *Store) Add(ctx context.Context, customerID string, rating float64, comment string) (Feedback, error) {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return Feedback{}, fmt.Errorf("%w: rating must be a finite number", ErrInvalid)
	}
	f := Feedback{
		ID:         s.newID(),
		CustomerID: customerID,
		Date:       s.now().UTC().Truncate(time.Millisecond),
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.coll.InsertOne(ctx, f); err != nil {
		return Feedback{}, fmt.Errorf("add feedback: %w", err)
	}
	return f, nil
}

// View returns the feedback with the given id. found is false when there
// is none.
func (s *Store) View(ctx context.Context, id string) (f Feedback, found bool, err error) {
	err = s.coll.FindOne(ctx, byID(id), &f)
	switch {
	case errors.Is(err, docstore.ErrNoDocument):
		return Feedback{}, false, nil
	case err != nil:
		return Feedback{}, false, fmt.Errorf("view feedback %s: %w", id, err)
	}
	return f, true, nil
}

// Delete removes the feedback and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return false, fmt.Errorf("delete feedback %s: %w", id, err)
	}
	return deleted, nil
}

func byID(id string) docstore.Filter {
	return docstore.Filter{"feedback_id": id}
}
