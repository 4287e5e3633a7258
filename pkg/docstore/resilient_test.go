package docstore_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"restaurantdb/pkg/docstore"
	"restaurantdb/pkg/docstore/mocks"
)

var fastPolicy = docstore.Policy{
	Timeout:         time.Second,
	MaxTries:        3,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
}

func unavailable() error {
	return fmt.Errorf("%w: connection refused", docstore.ErrUnavailable)
}

func TestResilient_FindOneRetriesUnavailable(t *testing.T) {
	coll := mocks.NewCollection(t)
	db := docstore.Resilient(mocks.Database{Coll: coll}, fastPolicy)

	filter := docstore.Filter{"order_id": "o-1"}
	coll.On("FindOne", mock.Anything, filter, mock.Anything).Return(unavailable()).Twice()
	coll.On("FindOne", mock.Anything, filter, mock.Anything).Return(nil).Once()

	var out struct{}
	err := db.Collection("Orders").FindOne(context.Background(), filter, &out)
	assert.NoError(t, err)
}

func TestResilient_FindOneGivesUpAfterMaxTries(t *testing.T) {
	coll := mocks.NewCollection(t)
	db := docstore.Resilient(mocks.Database{Coll: coll}, fastPolicy)

	coll.On("FindOne", mock.Anything, mock.Anything, mock.Anything).Return(unavailable()).Times(3)

	var out struct{}
	err := db.Collection("Orders").FindOne(context.Background(), docstore.Filter{}, &out)
	assert.ErrorIs(t, err, docstore.ErrUnavailable)
}

func TestResilient_NoDocumentIsNotRetried(t *testing.T) {
	coll := mocks.NewCollection(t)
	db := docstore.Resilient(mocks.Database{Coll: coll}, fastPolicy)

	coll.On("FindOne", mock.Anything, mock.Anything, mock.Anything).Return(docstore.ErrNoDocument).Once()

	var out struct{}
	err := db.Collection("Orders").FindOne(context.Background(), docstore.Filter{}, &out)
	assert.ErrorIs(t, err, docstore.ErrNoDocument)
}

func TestResilient_UpdateOneRetriesUnavailable(t *testing.T) {
	coll := mocks.NewCollection(t)
	db := docstore.Resilient(mocks.Database{Coll: coll}, fastPolicy)

	set := docstore.Set{"order_status": "Ready"}
	coll.On("UpdateOne", mock.Anything, mock.Anything, set).Return(false, unavailable()).Once()
	coll.On("UpdateOne", mock.Anything, mock.Anything, set).Return(true, nil).Once()

	matched, err := db.Collection("Orders").UpdateOne(context.Background(), docstore.Filter{"order_id": "o-1"}, set)
	assert.NoError(t, err)
	assert.True(t, matched)
}

func TestResilient_InsertAndDeleteRunOnce(t *testing.T) {
	coll := mocks.NewCollection(t)
	db := docstore.Resilient(mocks.Database{Coll: coll}, fastPolicy)

	coll.On("InsertOne", mock.Anything, mock.Anything).Return(unavailable()).Once()
	coll.On("DeleteOne", mock.Anything, mock.Anything).Return(false, unavailable()).Once()

	c := db.Collection("MenuItems")
	assert.ErrorIs(t, c.InsertOne(context.Background(), struct{}{}), docstore.ErrUnavailable)
	_, err := c.DeleteOne(context.Background(), docstore.Filter{"name": "Salad"})
	assert.ErrorIs(t, err, docstore.ErrUnavailable)
}

func TestResilient_AppliesTimeout(t *testing.T) {
	coll := mocks.NewCollection(t)
	db := docstore.Resilient(mocks.Database{Coll: coll}, docstore.Policy{Timeout: 50 * time.Millisecond, MaxTries: 1})

	coll.On("InsertOne", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, ok := ctx.Deadline()
			assert.True(t, ok)
		}).
		Return(errors.New("boom")).Once()

	err := db.Collection("MenuItems").InsertOne(context.Background(), struct{}{})
	assert.EqualError(t, err, "boom")
}

func blockUntilDone(args mock.Arguments) {
	<-args.Get(0).(context.Context).Done()
}

func TestResilient_TimeoutIsUnavailable(t *testing.T) {
	policy := docstore.Policy{Timeout: 30 * time.Millisecond, MaxTries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
	timeoutErr := fmt.Errorf("%w: %v", docstore.ErrUnavailable, context.DeadlineExceeded)

	tests := []struct {
		name string
		call func(c docstore.Collection) error
		mock func(coll *mocks.Collection)
	}{
		{
			name: "find one",
			mock: func(coll *mocks.Collection) {
				coll.On("FindOne", mock.Anything, mock.Anything, mock.Anything).Run(blockUntilDone).Return(timeoutErr)
			},
			call: func(c docstore.Collection) error {
				var out struct{}
				return c.FindOne(context.Background(), docstore.Filter{"order_id": "o-1"}, &out)
			},
		},
		{
			name: "update one",
			mock: func(coll *mocks.Collection) {
				coll.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Run(blockUntilDone).Return(false, timeoutErr)
			},
			call: func(c docstore.Collection) error {
				_, err := c.UpdateOne(context.Background(), docstore.Filter{"order_id": "o-1"}, docstore.Set{"order_status": "Ready"})
				return err
			},
		},
		{
			name: "bare deadline from backend",
			mock: func(coll *mocks.Collection) {
				coll.On("FindOne", mock.Anything, mock.Anything, mock.Anything).Run(blockUntilDone).Return(context.DeadlineExceeded)
			},
			call: func(c docstore.Collection) error {
				var out struct{}
				return c.FindOne(context.Background(), docstore.Filter{}, &out)
			},
		},
		{
			name: "insert one",
			mock: func(coll *mocks.Collection) {
				coll.On("InsertOne", mock.Anything, mock.Anything).Run(blockUntilDone).Return(context.DeadlineExceeded).Once()
			},
			call: func(c docstore.Collection) error {
				return c.InsertOne(context.Background(), struct{}{})
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			coll := mocks.NewCollection(t)
			testCase.mock(coll)
			db := docstore.Resilient(mocks.Database{Coll: coll}, policy)

			err := testCase.call(db.Collection("Orders"))
			assert.ErrorIs(t, err, docstore.ErrUnavailable)
		})
	}
}

func TestResilient_CallerCancelIsNotUnavailable(t *testing.T) {
	coll := mocks.NewCollection(t)
	db := docstore.Resilient(mocks.Database{Coll: coll}, fastPolicy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	coll.On("FindOne", mock.Anything, mock.Anything, mock.Anything).Return(context.Canceled).Maybe()

	var out struct{}
	err := db.Collection("Orders").FindOne(ctx, docstore.Filter{}, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, docstore.ErrUnavailable)
}
