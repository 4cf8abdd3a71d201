package txn_test

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/system/txn"
	"github.com/oakbarrel/cellar/internal/testutil"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no error", nil, false},
		{"unrelated error", errors.New("connection reset by peer"), false},
		{
			"illegal operation code",
			mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"},
			true,
		},
		{
			"command not supported code",
			mongo.CommandError{Code: 51, Message: "Illegal operation"},
			true,
		},
		{
			"operation not supported code",
			mongo.CommandError{Code: 263, Message: "Operation not supported in transaction"},
			true,
		},
		{
			"unrecognized command code",
			mongo.CommandError{Code: 11000, Message: "duplicate key error"},
			false,
		},
		{
			"standalone server wording",
			errors.New("transaction numbers are only allowed on a replica set member"),
			true,
		},
		{
			"sessions unsupported wording",
			errors.New("this server does not support sessions: not supported"),
			true,
		},
		{
			"transaction word by itself",
			errors.New("transaction aborted"),
			false,
		},
		{
			"transaction with session wording",
			errors.New("cannot start transaction on this session"),
			true,
		},
		{
			"transaction with illegal operation wording",
			errors.New("illegal operation while in a transaction"),
			true,
		},
		{
			"uppercase driver wording",
			errors.New("TRANSACTION requires a REPLICA SET deployment"),
			true,
		},
		{
			"mixed case wording",
			errors.New("Transaction failed: invalid Session"),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := txn.IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// The wine-delete cascade relies on WithTransaction applying every write
// whether or not the deployment supports transactions (standalone Mongo
// falls back to plain sequential writes).
func TestWithTransaction_AppliesAllWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	wineID := primitive.NewObjectID()
	err := txn.WithTransaction(ctx, db.Client(), zap.NewNop(), func(ctx context.Context) error {
		if _, err := db.Collection("vintages").DeleteMany(ctx, bson.M{"wine_id": wineID}); err != nil {
			return err
		}
		_, err := db.Collection("wines").InsertOne(ctx, bson.M{"_id": wineID, "name": "Cascade Marker"})
		return err
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	n, err := db.Collection("wines").CountDocuments(ctx, bson.M{"_id": wineID})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("write not applied: got %d documents, want 1", n)
	}
}

func TestWithTransaction_PropagatesFunctionError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	wantErr := errors.New("vintage delete refused")
	err := txn.WithTransaction(ctx, db.Client(), zap.NewNop(), func(ctx context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}
}
