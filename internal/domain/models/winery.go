// internal/domain/models/winery.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winery is a producer in the catalog. Name is globally unique, enforced by
// a unique index on the case-folded NameCI field.
//
// A winery may only be deleted while no Wine documents reference it; that
// rule lives in the route layer, not here, because the store has no foreign
// key constraints.
type Winery struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped

	Description string `bson:"description" json:"description"`

	FeaturedImage   AssetRecord   `bson:"featured_image,omitempty" json:"featuredImage"`
	Logo            AssetRecord   `bson:"logo,omitempty" json:"logo"`
	LifestyleImages []AssetRecord `bson:"lifestyle_images,omitempty" json:"lifestyleImages"`

	Status string `bson:"status" json:"status"`

	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy *primitive.ObjectID `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}
