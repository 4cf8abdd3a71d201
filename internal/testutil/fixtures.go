package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/oakbarrel/cellar/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role and the password
// "test-password".
func (f *Fixtures) CreateUser(ctx context.Context, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		EmailCI:      text.Fold(email),
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateInactiveUser creates a deactivated test user.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, email string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, email, models.RoleViewer)
	if _, err := f.db.Collection("users").UpdateByID(ctx, user.ID,
		map[string]any{"$set": map[string]any{"is_active": false}}); err != nil {
		f.t.Fatalf("failed to deactivate test user: %v", err)
	}
	user.IsActive = false
	return user
}

// CreateWinery creates a published test winery with the given name.
func (f *Fixtures) CreateWinery(ctx context.Context, name string) models.Winery {
	f.t.Helper()

	now := time.Now().UTC()
	winery := models.Winery{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test winery description",
		Status:      models.StatusPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("wineries").InsertOne(ctx, winery); err != nil {
		f.t.Fatalf("failed to create test winery: %v", err)
	}
	return winery
}

// CreateWine creates a test wine belonging to the given winery.
func (f *Fixtures) CreateWine(ctx context.Context, name string, wineryID primitive.ObjectID) models.Wine {
	f.t.Helper()

	now := time.Now().UTC()
	wine := models.Wine{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		WineryID:  wineryID,
		Region:    models.RegionNapaValley,
		Type:      models.WineTypeRed,
		Variety:   "Cabernet Sauvignon",
		Status:    models.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("wines").InsertOne(ctx, wine); err != nil {
		f.t.Fatalf("failed to create test wine: %v", err)
	}
	return wine
}

// CreateWineWithAwards creates a test wine carrying the given awards.
func (f *Fixtures) CreateWineWithAwards(ctx context.Context, name string, wineryID primitive.ObjectID, awards []models.Award) models.Wine {
	f.t.Helper()

	wine := f.CreateWine(ctx, name, wineryID)
	if _, err := f.db.Collection("wines").UpdateByID(ctx, wine.ID,
		map[string]any{"$set": map[string]any{"awards": awards}}); err != nil {
		f.t.Fatalf("failed to set test wine awards: %v", err)
	}
	wine.Awards = awards
	return wine
}

// CreateVintage creates a test vintage of the given wine and year.
func (f *Fixtures) CreateVintage(ctx context.Context, wineID primitive.ObjectID, year int) models.Vintage {
	f.t.Helper()

	now := time.Now().UTC()
	vintage := models.Vintage{
		ID:        primitive.NewObjectID(),
		WineID:    wineID,
		Year:      year,
		Status:    models.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("vintages").InsertOne(ctx, vintage); err != nil {
		f.t.Fatalf("failed to create test vintage: %v", err)
	}
	return vintage
}
