package locationRepo

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

// LocationRepository defines read operations over busking locations.
type LocationRepository interface {
	GetByID(id string) (*models.BuskingLocation, error)
	ListStates() ([]string, error)
	ListCities(state string) ([]string, error)
	ListByCity(city string, page, perPage int) ([]models.BuskingLocation, int64, error)
	ListGrouped() (map[string][]models.BuskingLocation, error)
	Insert(location *models.BuskingLocation) error
}

// MongoLocationRepo implements LocationRepository using MongoDB.
type MongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo constructs a new instance of MongoLocationRepo.
func NewMongoLocationRepo() *MongoLocationRepo {
	return &MongoLocationRepo{coll: database.Collection("busking_locations")}
}

func (repo *MongoLocationRepo) GetByID(id string) (*models.BuskingLocation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var loc models.BuskingLocation
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&loc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching location with id %s: %w", id, err)
	}
	return &loc, nil
}

func (repo *MongoLocationRepo) ListStates() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw, err := repo.coll.Distinct(ctx, "state", bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("error listing states: %w", err)
	}
	states := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			states = append(states, s)
		}
	}
	return states, nil
}

func (repo *MongoLocationRepo) ListCities(state string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if state != "" {
		filter["state"] = state
	}
	raw, err := repo.coll.Distinct(ctx, "city", filter)
	if err != nil {
		return nil, fmt.Errorf("error listing cities: %w", err)
	}
	cities := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			cities = append(cities, s)
		}
	}
	return cities, nil
}

func (repo *MongoLocationRepo) ListByCity(city string, page, perPage int) ([]models.BuskingLocation, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if city != "" {
		filter["city"] = bson.M{"$regex": "^" + city + "$", "$options": "i"}
	}

	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting locations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []models.BuskingLocation
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, 0, fmt.Errorf("error decoding locations: %w", err)
	}
	return locations, total, nil
}

// ListGrouped returns active locations keyed by city.
func (repo *MongoLocationRepo) ListGrouped() (map[string][]models.BuskingLocation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"isActive": true}, options.Find().SetSort(bson.D{{Key: "city", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []models.BuskingLocation
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("error decoding locations: %w", err)
	}

	grouped := make(map[string][]models.BuskingLocation)
	for _, loc := range locations {
		grouped[loc.City] = append(grouped[loc.City], loc)
	}
	return grouped, nil
}

func (repo *MongoLocationRepo) Insert(location *models.BuskingLocation) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, location); err != nil {
		return fmt.Errorf("error inserting location: %w", err)
	}
	return nil
}
