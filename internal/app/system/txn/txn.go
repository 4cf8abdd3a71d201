// internal/app/system/txn/txn.go

// Package txn wraps multi-document work in a Mongo transaction when the
// deployment supports one. Standalone servers (common in dev) reject
// transactions, so WithTransaction detects that and falls back to running
// the function without one — the wine-delete cascade prefers atomicity but
// must still work against a standalone instance.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Server error codes returned when transactions are unavailable.
const (
	codeIllegalOperation      = 20
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, no replica set).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
			return true
		}
	}

	// Driver and server wordings vary; match known keyword pairs.
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "transaction") {
		if strings.Contains(s, "replica set") ||
			strings.Contains(s, "session") ||
			strings.Contains(s, "illegal operation") {
			return true
		}
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}

// WithTransaction runs fn inside a transaction when possible. When the
// deployment does not support transactions, fn runs once more outside one;
// callers must order their writes so the non-transactional path degrades
// safely (children before parents for cascading deletes).
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			if log != nil {
				log.Warn("transactions unavailable; running without one", zap.Error(err))
			}
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Warn("transactions unavailable; running without one", zap.Error(err))
		}
		return fn(ctx)
	}
	return err
}
