// internal/app/store/wineries/winerystore.go
package winerystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oakbarrel/cellar/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateWinery = errors.New("a winery with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("wineries")}
}

func (s *Store) Create(ctx context.Context, w models.Winery) (models.Winery, error) {
	now := time.Now().UTC()
	w.ID = primitive.NewObjectID()
	w.NameCI = text.Fold(w.Name)
	if w.Status == "" {
		w.Status = models.DefaultStatus
	}
	w.CreatedAt = now
	w.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, w)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Winery{}, ErrDuplicateWinery
		}
		return models.Winery{}, err
	}
	return w, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Winery, error) {
	var w models.Winery
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err != nil {
		return models.Winery{}, err
	}
	return w, nil
}

// Update applies the given $set document, refreshes UpdatedAt, and returns
// the updated winery. The handler builds the set from validated input so the
// store stays a thin persistence layer.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Winery, error) {
	set["updated_at"] = time.Now().UTC()
	if name, ok := set["name"].(string); ok {
		set["name_ci"] = text.Fold(name)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var w models.Winery
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&w)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Winery{}, ErrDuplicateWinery
		}
		return models.Winery{}, err
	}
	return w, nil
}

// Delete removes a winery by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// NameExistsForOther checks if a winery with the given name exists, excluding
// the specified ID. Update validation uses this so a record can keep its own
// name.
func (s *Store) NameExistsForOther(ctx context.Context, nameCI string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"name_ci": nameCI,
		"_id":     bson.M{"$ne": excludeID},
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Find returns wineries matching the given filter with optional find options.
// The caller is responsible for building the filter and options (pagination,
// sorting, projection).
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Winery, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var wineries []models.Winery
	if err := cur.All(ctx, &wineries); err != nil {
		return nil, err
	}
	return wineries, nil
}

// Count returns the number of wineries matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
