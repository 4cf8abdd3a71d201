// internal/app/store/wines/winestore.go
package winestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/system/txn"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

type Store struct {
	c        *mongo.Collection
	vintages *mongo.Collection
}

var ErrAwardNotFound = errors.New("award not found on this wine")

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("wines"),
		vintages: db.Collection("vintages"),
	}
}

func (s *Store) Create(ctx context.Context, w models.Wine) (models.Wine, error) {
	now := time.Now().UTC()
	w.ID = primitive.NewObjectID()
	w.NameCI = text.Fold(w.Name)
	if w.Status == "" {
		w.Status = models.DefaultStatus
	}
	if w.Awards == nil {
		w.Awards = []models.Award{}
	}
	w.CreatedAt = now
	w.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, w); err != nil {
		return models.Wine{}, err
	}
	return w, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Wine, error) {
	var w models.Wine
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err != nil {
		return models.Wine{}, err
	}
	return w, nil
}

// Update applies the given $set document, refreshes UpdatedAt, and returns
// the updated wine.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Wine, error) {
	set["updated_at"] = time.Now().UTC()
	if name, ok := set["name"].(string); ok {
		set["name_ci"] = text.Fold(name)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var w models.Wine
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&w)
	if err != nil {
		return models.Wine{}, err
	}
	return w, nil
}

// DeleteCascade removes a wine and all of its vintages. Both deletes run in
// one transaction when the deployment supports them; on a standalone server
// the vintages go first so a partial failure never leaves orphans.
func (s *Store) DeleteCascade(ctx context.Context, log *zap.Logger, id primitive.ObjectID) (int64, error) {
	var deleted int64
	err := txn.WithTransaction(ctx, s.c.Database().Client(), log, func(ctx context.Context) error {
		if _, err := s.vintages.DeleteMany(ctx, bson.M{"wine_id": id}); err != nil {
			return err
		}
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// CountByWinery reports how many wines reference the given winery. The
// winery delete handler refuses to remove a winery that still has wines.
func (s *Store) CountByWinery(ctx context.Context, wineryID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"winery_id": wineryID})
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Wine, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var wines []models.Wine
	if err := cur.All(ctx, &wines); err != nil {
		return nil, err
	}
	return wines, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

/* -------------------------------------------------------------------------- */
/* Awards (embedded array on the wine document)                               */
/* -------------------------------------------------------------------------- */

// AddAward appends an award and returns the updated wine.
func (s *Store) AddAward(ctx context.Context, wineID primitive.ObjectID, a models.Award) (models.Wine, error) {
	a.ID = primitive.NewObjectID()

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var w models.Wine
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": wineID}, bson.M{
		"$push": bson.M{"awards": a},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}, opts).Decode(&w)
	if err != nil {
		return models.Wine{}, err
	}
	return w, nil
}

// UpdateAward modifies one award in place via the positional operator and
// returns the updated wine. ErrAwardNotFound when the wine exists but the
// award does not.
func (s *Store) UpdateAward(ctx context.Context, wineID, awardID primitive.ObjectID, a models.Award) (models.Wine, error) {
	a.ID = awardID

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var w models.Wine
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": wineID, "awards._id": awardID},
		bson.M{"$set": bson.M{
			"awards.$":   a,
			"updated_at": time.Now().UTC(),
		}}, opts).Decode(&w)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing wine from a missing award.
		if exists := s.c.FindOne(ctx, bson.M{"_id": wineID}).Err(); exists == nil {
			return models.Wine{}, ErrAwardNotFound
		}
		return models.Wine{}, mongo.ErrNoDocuments
	}
	if err != nil {
		return models.Wine{}, err
	}
	return w, nil
}

// RemoveAward pulls an award from the wine. Pulling an id that is not there
// is not an error; the operation is a no-op and the current wine comes back.
func (s *Store) RemoveAward(ctx context.Context, wineID, awardID primitive.ObjectID) (models.Wine, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var w models.Wine
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": wineID}, bson.M{
		"$pull": bson.M{"awards": bson.M{"_id": awardID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}, opts).Decode(&w)
	if err != nil {
		return models.Wine{}, err
	}
	return w, nil
}
