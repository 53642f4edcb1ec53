package podRepo

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

// ListFilters narrows the pod listing.
type ListFilters struct {
	City     string
	Mall     string
	MinPrice float64
	MaxPrice float64
}

// PodRepository defines persistence operations for pods.
type PodRepository interface {
	Insert(pod *models.Pod) error
	GetByID(id string) (*models.Pod, error)
	Update(pod *models.Pod) error
	SetActive(id string, active bool) error
	List(filters ListFilters, page, perPage int) ([]models.Pod, int64, error)
	Search(query string, page, perPage int) ([]models.Pod, int64, error)
}

// MongoPodRepo implements PodRepository using MongoDB.
type MongoPodRepo struct {
	coll *mongo.Collection
}

// NewMongoPodRepo constructs a new instance of MongoPodRepo.
func NewMongoPodRepo() *MongoPodRepo {
	return &MongoPodRepo{coll: database.Collection("pods")}
}

func (repo *MongoPodRepo) Insert(pod *models.Pod) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, pod); err != nil {
		return fmt.Errorf("error inserting pod: %w", err)
	}
	return nil
}

func (repo *MongoPodRepo) GetByID(id string) (*models.Pod, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var pod models.Pod
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&pod); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching pod with id %s: %w", id, err)
	}
	return &pod, nil
}

func (repo *MongoPodRepo) Update(pod *models.Pod) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pod.UpdatedAt = time.Now()
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"id": pod.ID}, pod)
	if err != nil {
		return fmt.Errorf("error updating pod %s: %w", pod.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("pod %s not found", pod.ID)
	}
	return nil
}

func (repo *MongoPodRepo) SetActive(id string, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating pod %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("pod %s not found", id)
	}
	return nil
}

// List returns active pods matching the filters, paginated.
func (repo *MongoPodRepo) List(filters ListFilters, page, perPage int) ([]models.Pod, int64, error) {
	filter := bson.M{"isActive": true}
	if filters.City != "" {
		filter["city"] = bson.M{"$regex": filters.City, "$options": "i"}
	}
	if filters.Mall != "" {
		filter["mall"] = bson.M{"$regex": filters.Mall, "$options": "i"}
	}
	price := bson.M{}
	if filters.MinPrice > 0 {
		price["$gte"] = filters.MinPrice
	}
	if filters.MaxPrice > 0 {
		price["$lte"] = filters.MaxPrice
	}
	if len(price) > 0 {
		filter["pricePerHour"] = price
	}
	return repo.find(filter, page, perPage)
}

// Search matches active pods by name, city, mall or description.
func (repo *MongoPodRepo) Search(query string, page, perPage int) ([]models.Pod, int64, error) {
	pattern := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{
		"isActive": true,
		"$or": bson.A{
			bson.M{"name": pattern},
			bson.M{"city": pattern},
			bson.M{"mall": pattern},
			bson.M{"description": pattern},
		},
	}
	return repo.find(filter, page, perPage)
}

func (repo *MongoPodRepo) find(filter bson.M, page, perPage int) ([]models.Pod, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting pods: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing pods: %w", err)
	}
	defer cursor.Close(ctx)

	var pods []models.Pod
	if err := cursor.All(ctx, &pods); err != nil {
		return nil, 0, fmt.Errorf("error decoding pods: %w", err)
	}
	return pods, total, nil
}
