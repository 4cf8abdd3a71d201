// internal/app/store/users/userstore.go
package userstore

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
	"golang.org/x/crypto/bcrypt"

	"github.com/oakbarrel/cellar/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Create inserts a user. The caller supplies PasswordHash (see HashPassword);
// plaintext never reaches the store.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.EmailCI = text.Fold(u.Email)
	if u.Role == "" {
		u.Role = models.RoleViewer
	}
	u.IsActive = true
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks a user up by case-folded email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Update applies the given $set document, refreshes UpdatedAt, and returns
// the updated user. An email in the set is re-folded into email_ci.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.User, error) {
	set["updated_at"] = time.Now().UTC()
	if email, ok := set["email"].(string); ok {
		set["email_ci"] = text.Fold(email)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// EnsureAdmin creates the bootstrap admin account when no user holds that
// email yet. Startup calls this so a fresh deployment is reachable.
func (s *Store) EnsureAdmin(ctx context.Context, email, password string) (models.User, bool, error) {
	existing, err := s.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, false, err
	}
	created, err := s.Create(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		Role:         models.RoleAdmin,
	})
	if err == ErrDuplicateEmail {
		// Lost a race with another instance; the account exists now.
		existing, gerr := s.GetByEmail(ctx, email)
		if gerr != nil {
			return models.User{}, false, gerr
		}
		return existing, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return created, true, nil
}
