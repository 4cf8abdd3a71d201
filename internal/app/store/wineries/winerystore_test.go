package winerystore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	winerystore "github.com/oakbarrel/cellar/internal/app/store/wineries"
	"github.com/oakbarrel/cellar/internal/domain/models"
	"github.com/oakbarrel/cellar/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := winerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Winery{
		Name:        "Silver Oak",
		Description: "Napa Valley cabernet house",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Status != models.DefaultStatus {
		t.Errorf("status: got %q, want %q", created.Status, models.DefaultStatus)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := winerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Winery{Name: "Ridge Vineyards"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same name with different case and diacritics still collides on name_ci.
	_, err := store.Create(ctx, models.Winery{Name: "RIDGE VINEYARDS"})
	if err != winerystore.ErrDuplicateWinery {
		t.Errorf("expected ErrDuplicateWinery, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := winerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := winerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Winery{Name: "Château Margaux"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, bson.M{
		"name":        "Château Margaux Estate",
		"description": "First growth",
		"status":      models.StatusPublished,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Château Margaux Estate" {
		t.Errorf("Name: got %q", updated.Name)
	}
	if updated.NameCI != "chateau margaux estate" {
		t.Errorf("NameCI: got %q, want folded name", updated.NameCI)
	}
	if updated.Status != models.StatusPublished {
		t.Errorf("Status: got %q", updated.Status)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestStore_NameExistsForOther(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := winerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.Winery{Name: "Opus One"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := store.Create(ctx, models.Winery{Name: "Screaming Eagle"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A record keeping its own name is not a conflict.
	exists, err := store.NameExistsForOther(ctx, a.NameCI, a.ID)
	if err != nil {
		t.Fatalf("NameExistsForOther failed: %v", err)
	}
	if exists {
		t.Error("own name should not count as a conflict")
	}

	// Another record taking that name is.
	exists, err = store.NameExistsForOther(ctx, a.NameCI, b.ID)
	if err != nil {
		t.Fatalf("NameExistsForOther failed: %v", err)
	}
	if !exists {
		t.Error("expected conflict with existing winery name")
	}
}

func TestStore_FindAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := winerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Alpha Cellars", "Beta Cellars", "Gamma Cellars"} {
		if _, err := store.Create(ctx, models.Winery{Name: name}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	total, err := store.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Count: got %d, want 3", total)
	}

	got, err := store.Find(ctx, bson.M{"name_ci": bson.M{"$regex": "^beta"}})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Beta Cellars" {
		t.Errorf("Find: got %+v", got)
	}
}
