// internal/domain/models/vintage.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinVintageYear is the earliest year accepted for a vintage (and for awards).
const MinVintageYear = 1900

// MaxVintageYear returns the latest year accepted for a vintage. Futures are
// sold one year ahead, so currentYear+1 is allowed.
func MaxVintageYear() int {
	return time.Now().UTC().Year() + 1
}

// Canonical asset slot identifiers for the vintage asset sub-resource.
const (
	AssetBottleImage    = "bottleImage"
	AssetLabelImage     = "labelImage"
	AssetTechSheet      = "techSheet"
	AssetTastingCard    = "tastingCard"
	AssetLifestyleImage = "lifestyleImage"
	AssetShelfTalker    = "shelfTalker"
)

// AssetTypes is the allow-list for the assets sub-resource. Requests naming
// any other slot are rejected with a bad-request error.
var AssetTypes = []string{
	AssetBottleImage,
	AssetLabelImage,
	AssetTechSheet,
	AssetTastingCard,
	AssetLifestyleImage,
	AssetShelfTalker,
}

// IsValidAssetType reports whether t is an allowed asset slot name.
// Matching is exact: slot names are part of the API contract.
func IsValidAssetType(t string) bool {
	t = strings.TrimSpace(t)
	for _, v := range AssetTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Production records how much of a vintage was made.
type Production struct {
	Cases   int `bson:"cases,omitempty" json:"cases,omitempty"`
	Bottles int `bson:"bottles,omitempty" json:"bottles,omitempty"`
}

// Pricing holds wholesale/retail prices for a vintage.
type Pricing struct {
	Wholesale float64 `bson:"wholesale,omitempty" json:"wholesale,omitempty"`
	Retail    float64 `bson:"retail,omitempty" json:"retail,omitempty"`
	Currency  string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// DefaultCurrency is applied when a vintage is created without one.
const DefaultCurrency = "USD"

// VintageAssets holds the named embedded asset slots for a vintage.
type VintageAssets struct {
	BottleImage    AssetRecord `bson:"bottle_image,omitempty" json:"bottleImage"`
	LabelImage     AssetRecord `bson:"label_image,omitempty" json:"labelImage"`
	TechSheet      AssetRecord `bson:"tech_sheet,omitempty" json:"techSheet"`
	TastingCard    AssetRecord `bson:"tasting_card,omitempty" json:"tastingCard"`
	LifestyleImage AssetRecord `bson:"lifestyle_image,omitempty" json:"lifestyleImage"`
	ShelfTalker    AssetRecord `bson:"shelf_talker,omitempty" json:"shelfTalker"`
}

// Slot returns a pointer to the named asset slot, or nil for an unknown name.
func (a *VintageAssets) Slot(assetType string) *AssetRecord {
	switch assetType {
	case AssetBottleImage:
		return &a.BottleImage
	case AssetLabelImage:
		return &a.LabelImage
	case AssetTechSheet:
		return &a.TechSheet
	case AssetTastingCard:
		return &a.TastingCard
	case AssetLifestyleImage:
		return &a.LifestyleImage
	case AssetShelfTalker:
		return &a.ShelfTalker
	}
	return nil
}

// Vintage is one year's bottling of a wine. The (wine_id, year) pair is
// unique, enforced by a compound unique index; route-layer pre-checks are a
// fast path only and the index remains the real guarantee.
type Vintage struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WineID primitive.ObjectID `bson:"wine_id" json:"wine"`
	Year   int                `bson:"year" json:"year"`

	Assets     VintageAssets `bson:"assets,omitempty" json:"assets"`
	Notes      string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Production Production    `bson:"production,omitempty" json:"production"`
	Pricing    Pricing       `bson:"pricing,omitempty" json:"pricing"`

	Status string `bson:"status" json:"status"`

	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy *primitive.ObjectID `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}
