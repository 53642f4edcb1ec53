package adminRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buskpod/database"
	"buskpod/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEmail is returned when the email unique index rejects an insert.
var ErrDuplicateEmail = errors.New("email already registered")

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	Insert(admin *models.AdminUser) error
	GetByID(id string) (*models.AdminUser, error)
	GetByEmail(email string) (*models.AdminUser, error)
	Update(admin *models.AdminUser) error
	Delete(id string) error
	ListAll() ([]models.AdminUser, error)
}

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo constructs a new instance of MongoAdminRepo.
func NewMongoAdminRepo() *MongoAdminRepo {
	return &MongoAdminRepo{coll: database.Collection("admin_users")}
}

// EnsureIndexes creates the unique email index.
func (repo *MongoAdminRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (repo *MongoAdminRepo) Insert(admin *models.AdminUser) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("error inserting admin: %w", err)
	}
	return nil
}

func (repo *MongoAdminRepo) GetByID(id string) (*models.AdminUser, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admin models.AdminUser
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching admin with id %s: %w", id, err)
	}
	return &admin, nil
}

func (repo *MongoAdminRepo) GetByEmail(email string) (*models.AdminUser, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admin models.AdminUser
	if err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching admin with email %s: %w", email, err)
	}
	return &admin, nil
}

func (repo *MongoAdminRepo) Update(admin *models.AdminUser) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admin.UpdatedAt = time.Now()
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": admin.ID}, admin)
	if err != nil {
		return fmt.Errorf("error updating admin %s: %w", admin.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("admin %s not found", admin.ID)
	}
	return nil
}

func (repo *MongoAdminRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting admin %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("admin %s not found", id)
	}
	return nil
}

func (repo *MongoAdminRepo) ListAll() ([]models.AdminUser, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing admins: %w", err)
	}
	defer cursor.Close(ctx)

	var admins []models.AdminUser
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("error decoding admins: %w", err)
	}
	return admins, nil
}
