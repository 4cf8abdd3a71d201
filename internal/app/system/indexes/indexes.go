// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureWineries(ctx, db); err != nil {
		problems = append(problems, "wineries: "+err.Error())
	}
	if err := ensureWines(ctx, db); err != nil {
		problems = append(problems, "wines: "+err.Error())
	}
	if err := ensureVintages(ctx, db); err != nil {
		problems = append(problems, "vintages: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func loadExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		existing := loadExisting(ctx, coll)

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}

			// Name or options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				errs = append(errs, describeCreateErr(coll, desiredName, desiredSig, desiredUnique, err))
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.String("took", time.Since(start).String()))
			continue
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil && isOptionsConflictErr(err) {
			// Same keys exist under another name; align by dropping and retrying once.
			if ex, ok := loadExisting(ctx, coll)[desiredSig]; ok {
				if _, dropErr := coll.Indexes().DropOne(ctx, ex.Name); dropErr != nil {
					zap.L().Warn("failed to drop conflicting index",
						zap.String("collection", coll.Name()),
						zap.String("name", ex.Name),
						zap.Error(dropErr))
				}
				created, err = coll.Indexes().CreateOne(ctx, m)
			}
		}
		if err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, describeCreateErr(coll, desiredName, desiredSig, desiredUnique, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("created_name", created),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func describeCreateErr(coll *mongo.Collection, name, sig string, unique *bool, err error) string {
	if isDuplicateKeyErr(err) && unique != nil && *unique {
		helper := ""
		switch {
		case coll.Name() == "users" && strings.Contains(sig, "email_ci:1"):
			helper = " — duplicate emails exist in users"
		case coll.Name() == "wineries" && strings.Contains(sig, "name_ci:1"):
			helper = " — duplicate winery names exist"
		case coll.Name() == "vintages" && strings.Contains(sig, "wine_id:1"):
			helper = " — duplicate (wine, year) pairs exist in vintages"
		}
		return fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)%s", coll.Name(), name, helper)
	}
	return fmt.Sprintf("%s(%s): %v", coll.Name(), name, err)
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique (case/diacritics folded via email_ci)
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
		// Role filters on admin screens
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_role_emailci"),
		},
	})
}

func ensureWineries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("wineries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// No duplicate winery names (case/diacritics folded via name_ci)
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_wineries_nameci"),
		},
		// Status filter + name sort + stable tiebreak
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_wineries_status_nameci__id"),
		},
		// Latest-first listings
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_wineries_created"),
		},
	})
}

func ensureWines(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("wines")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-winery lookups, counts, and the winery-delete guard
		{
			Keys:    bson.D{{Key: "winery_id", Value: 1}},
			Options: options.Index().SetName("idx_wines_winery"),
		},
		// Name prefix search + stable sort
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_wines_nameci__id"),
		},
		// Region and type filters on catalog screens
		{
			Keys:    bson.D{{Key: "region", Value: 1}},
			Options: options.Index().SetName("idx_wines_region"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}},
			Options: options.Index().SetName("idx_wines_type"),
		},
		// Latest-first listings
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_wines_created"),
		},
	})
}

func ensureVintages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("vintages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One vintage per (wine, year); the store pre-checks but this backstops races
		{
			Keys:    bson.D{{Key: "wine_id", Value: 1}, {Key: "year", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_vintages_wine_year"),
		},
		// Per-wine lookups and the wine-delete cascade
		{
			Keys:    bson.D{{Key: "wine_id", Value: 1}},
			Options: options.Index().SetName("idx_vintages_wine"),
		},
		// Year filter on catalog screens
		{
			Keys:    bson.D{{Key: "year", Value: -1}},
			Options: options.Index().SetName("idx_vintages_year"),
		},
		// Latest-first listings
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_vintages_created"),
		},
	})
}
