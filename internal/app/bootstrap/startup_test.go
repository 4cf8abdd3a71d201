package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/oakbarrel/cellar/internal/domain/models"
	"github.com/oakbarrel/cellar/internal/testutil"
)

func TestEnsureBootstrapAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{CellarMongoDatabase: db}

	if err := ensureBootstrapAdmin(ctx, deps, "admin@cellar.test", "first-password", zap.NewNop()); err != nil {
		t.Fatalf("ensureBootstrapAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@cellar.test"}).Decode(&user); err != nil {
		t.Fatalf("find created admin: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleAdmin)
	}
	if !user.IsActive {
		t.Error("admin should be active")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("first-password")); err != nil {
		t.Errorf("password does not verify: %v", err)
	}
}

func TestEnsureBootstrapAdmin_LeavesExistingAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{CellarMongoDatabase: db}

	if err := ensureBootstrapAdmin(ctx, deps, "admin@cellar.test", "first-password", zap.NewNop()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	// A changed configured password must not overwrite the live credential.
	if err := ensureBootstrapAdmin(ctx, deps, "admin@cellar.test", "second-password", zap.NewNop()); err != nil {
		t.Fatalf("second run: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": "admin@cellar.test"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("admin accounts: got %d, want 1", n)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "admin@cellar.test"}).Decode(&user); err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("first-password")); err != nil {
		t.Errorf("original password should still verify: %v", err)
	}
}
