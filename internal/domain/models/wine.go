// internal/domain/models/wine.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Award is one embedded competition result on a wine.
type Award struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Score     int                `bson:"score" json:"score"` // 0..100
	AwardName string             `bson:"award_name" json:"awardName"`
	Year      int                `bson:"year" json:"year"` // >= 1900
}

// BottleImage holds the wine's bottle shot. Unlike vintage assets, this is a
// URL plus generation metadata because bottle images may come from the image
// generation service rather than an upload.
type BottleImage struct {
	URL         string     `bson:"url,omitempty" json:"url,omitempty"`
	GeneratedBy string     `bson:"generated_by,omitempty" json:"generatedBy,omitempty"`
	Prompt      string     `bson:"prompt,omitempty" json:"prompt,omitempty"`
	GeneratedAt *time.Time `bson:"generated_at,omitempty" json:"generatedAt,omitempty"`
}

// Wine is one product made by a winery. The winery reference must resolve at
// creation time; deleting a wine removes all of its vintages.
type Wine struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"name_ci" json:"-"`

	WineryID primitive.ObjectID `bson:"winery_id" json:"winery"`

	Description  string `bson:"description,omitempty" json:"description,omitempty"`
	Region       string `bson:"region" json:"region"`
	Type         string `bson:"type,omitempty" json:"type,omitempty"`
	TastingNotes string `bson:"tasting_notes,omitempty" json:"tastingNotes,omitempty"`
	Variety      string `bson:"variety,omitempty" json:"variety,omitempty"`
	FoodPairing  string `bson:"food_pairing,omitempty" json:"foodPairing,omitempty"`

	BottleImage BottleImage `bson:"bottle_image,omitempty" json:"bottleImage"`
	Awards      []Award     `bson:"awards,omitempty" json:"awards"`

	Status string `bson:"status" json:"status"`

	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	UpdatedBy *primitive.ObjectID `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}
