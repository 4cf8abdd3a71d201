// internal/app/store/vintages/vintagestore.go
package vintagestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oakbarrel/cellar/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrVintageExists = errors.New("a vintage for this wine and year already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("vintages")}
}

// bsonSlot maps an API asset slot name to its BSON field path.
func bsonSlot(assetType string) string {
	switch assetType {
	case models.AssetBottleImage:
		return "assets.bottle_image"
	case models.AssetLabelImage:
		return "assets.label_image"
	case models.AssetTechSheet:
		return "assets.tech_sheet"
	case models.AssetTastingCard:
		return "assets.tasting_card"
	case models.AssetLifestyleImage:
		return "assets.lifestyle_image"
	case models.AssetShelfTalker:
		return "assets.shelf_talker"
	}
	return ""
}

// Create inserts a vintage. The (wine_id, year) unique index turns a racing
// duplicate into ErrVintageExists; callers pre-check with ExistsForWineYear
// for a friendlier error path.
func (s *Store) Create(ctx context.Context, v models.Vintage) (models.Vintage, error) {
	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	if v.Status == "" {
		v.Status = models.DefaultStatus
	}
	if v.Pricing.Currency == "" {
		v.Pricing.Currency = models.DefaultCurrency
	}
	v.CreatedAt = now
	v.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, v)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Vintage{}, ErrVintageExists
		}
		return models.Vintage{}, err
	}
	return v, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Vintage, error) {
	var v models.Vintage
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		return models.Vintage{}, err
	}
	return v, nil
}

// ExistsForWineYear reports whether a vintage for (wineID, year) exists,
// excluding excludeID when it is non-nil (update validation).
func (s *Store) ExistsForWineYear(ctx context.Context, wineID primitive.ObjectID, year int, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"wine_id": wineID, "year": year}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update applies the given $set document, refreshes UpdatedAt, and returns
// the updated vintage.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Vintage, error) {
	set["updated_at"] = time.Now().UTC()

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var v models.Vintage
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&v)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Vintage{}, ErrVintageExists
		}
		return models.Vintage{}, err
	}
	return v, nil
}

// Delete removes a vintage by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// SetAsset writes one named asset slot and returns the updated vintage.
func (s *Store) SetAsset(ctx context.Context, id primitive.ObjectID, assetType string, rec models.AssetRecord) (models.Vintage, error) {
	path := bsonSlot(assetType)
	if path == "" {
		return models.Vintage{}, errors.New("unknown asset slot: " + assetType)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var v models.Vintage
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		path:         rec,
		"updated_at": time.Now().UTC(),
	}}, opts).Decode(&v)
	if err != nil {
		return models.Vintage{}, err
	}
	return v, nil
}

// ClearAsset unsets one named asset slot and returns the updated vintage.
func (s *Store) ClearAsset(ctx context.Context, id primitive.ObjectID, assetType string) (models.Vintage, error) {
	path := bsonSlot(assetType)
	if path == "" {
		return models.Vintage{}, errors.New("unknown asset slot: " + assetType)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var v models.Vintage
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{path: ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	}, opts).Decode(&v)
	if err != nil {
		return models.Vintage{}, err
	}
	return v, nil
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Vintage, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var vintages []models.Vintage
	if err := cur.All(ctx, &vintages); err != nil {
		return nil, err
	}
	return vintages, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
