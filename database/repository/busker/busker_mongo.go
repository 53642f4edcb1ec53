package buskerRepo

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

// BuskerRepository defines persistence operations for busker profiles.
type BuskerRepository interface {
	Insert(busker *models.Busker) error
	GetByID(id string) (*models.Busker, error)
	GetByUserID(userID string) (*models.Busker, error)
	Update(busker *models.Busker) error
	List(verificationStatus string, isAvailable *bool, page, perPage int) ([]models.Busker, int64, error)
	ListPending() ([]models.Busker, error)
	CountAll() (int64, error)
	CountActive() (int64, error)
}

// MongoBuskerRepo implements BuskerRepository using MongoDB.
type MongoBuskerRepo struct {
	coll *mongo.Collection
}

// NewMongoBuskerRepo constructs a new instance of MongoBuskerRepo.
func NewMongoBuskerRepo() *MongoBuskerRepo {
	return &MongoBuskerRepo{coll: database.Collection("buskers")}
}

// EnsureIndexes creates the unique per-user index.
func (repo *MongoBuskerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (repo *MongoBuskerRepo) Insert(busker *models.Busker) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, busker); err != nil {
		return fmt.Errorf("error inserting busker: %w", err)
	}
	return nil
}

func (repo *MongoBuskerRepo) GetByID(id string) (*models.Busker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var busker models.Busker
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&busker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching busker with id %s: %w", id, err)
	}
	return &busker, nil
}

func (repo *MongoBuskerRepo) GetByUserID(userID string) (*models.Busker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var busker models.Busker
	if err := repo.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&busker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching busker for user %s: %w", userID, err)
	}
	return &busker, nil
}

func (repo *MongoBuskerRepo) Update(busker *models.Busker) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	busker.UpdatedAt = time.Now()
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": busker.ID}, busker)
	if err != nil {
		return fmt.Errorf("error updating busker %s: %w", busker.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("busker %s not found", busker.ID)
	}
	return nil
}

func (repo *MongoBuskerRepo) List(verificationStatus string, isAvailable *bool, page, perPage int) ([]models.Busker, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if verificationStatus != "" {
		filter["verificationStatus"] = verificationStatus
	}
	if isAvailable != nil {
		filter["isAvailable"] = *isAvailable
	}

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting buskers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing buskers: %w", err)
	}
	defer cursor.Close(ctx)

	var buskers []models.Busker
	if err := cursor.All(ctx, &buskers); err != nil {
		return nil, 0, fmt.Errorf("error decoding buskers: %w", err)
	}
	return buskers, total, nil
}

// ListPending returns buskers awaiting verification, oldest first.
func (repo *MongoBuskerRepo) ListPending() ([]models.Busker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"verificationStatus": models.VerificationPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing pending buskers: %w", err)
	}
	defer cursor.Close(ctx)

	var buskers []models.Busker
	if err := cursor.All(ctx, &buskers); err != nil {
		return nil, fmt.Errorf("error decoding pending buskers: %w", err)
	}
	return buskers, nil
}

func (repo *MongoBuskerRepo) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repo.coll.CountDocuments(ctx, bson.M{})
}

// CountActive counts approved buskers currently accepting work.
func (repo *MongoBuskerRepo) CountActive() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repo.coll.CountDocuments(ctx, bson.M{
		"isAvailable":        true,
		"verificationStatus": models.VerificationApproved,
	})
}
