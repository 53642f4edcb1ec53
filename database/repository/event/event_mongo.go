package eventRepo

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

// ErrDuplicateReference is returned when a generated ticket reference collides.
var ErrDuplicateReference = errors.New("booking reference already exists")

// ErrSoldOut is returned when the capacity guard refuses a ticket increment.
var ErrSoldOut = errors.New("event sold out or not found")

// EventRepository defines persistence operations for events and ticket bookings.
type EventRepository interface {
	Insert(event *models.Event) error
	GetByID(id string) (*models.Event, error)
	Update(event *models.Event) error
	List(publishedOnly bool, search string, page, perPage int) ([]models.Event, int64, error)
	IncrementTicketsSold(eventID string, count int) error
	DecrementTicketsSold(eventID string, count int) error
	InsertBooking(booking *models.EventBooking) error
	GetBookingByID(id string) (*models.EventBooking, error)
	FindBookingsByUser(userID string, page, perPage int) ([]models.EventBooking, int64, error)
	CountAll() (int64, error)
}

// MongoEventRepo implements EventRepository using MongoDB.
type MongoEventRepo struct {
	eventColl   *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoEventRepo constructs a new instance of MongoEventRepo.
func NewMongoEventRepo() *MongoEventRepo {
	return &MongoEventRepo{
		eventColl:   database.Collection("events"),
		bookingColl: database.Collection("event_bookings"),
	}
}

// EnsureIndexes creates the unique ticket-reference index.
func (repo *MongoEventRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.bookingColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingReference", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (repo *MongoEventRepo) Insert(event *models.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.eventColl.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("error inserting event: %w", err)
	}
	return nil
}

func (repo *MongoEventRepo) GetByID(id string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var event models.Event
	if err := repo.eventColl.FindOne(ctx, bson.M{"id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching event with id %s: %w", id, err)
	}
	return &event, nil
}

func (repo *MongoEventRepo) Update(event *models.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event.UpdatedAt = time.Now()
	res, err := repo.eventColl.ReplaceOne(ctx, bson.M{"id": event.ID}, event)
	if err != nil {
		return fmt.Errorf("error updating event %s: %w", event.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event %s not found", event.ID)
	}
	return nil
}

func (repo *MongoEventRepo) List(publishedOnly bool, search string, page, perPage int) ([]models.Event, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if publishedOnly {
		filter["isPublished"] = true
	}
	if search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"title": regex},
			{"description": regex},
			{"venue": regex},
		}
	}

	total, err := repo.eventColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "eventDate", Value: 1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cursor, err := repo.eventColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("error decoding events: %w", err)
	}
	return events, total, nil
}

// IncrementTicketsSold bumps the sold counter, guarding capacity at the query
// level so concurrent ticket purchases cannot oversell.
func (repo *MongoEventRepo) IncrementTicketsSold(eventID string, count int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": eventID,
		"$expr": bson.M{
			"$lte": bson.A{bson.M{"$add": bson.A{"$currentBookings", count}}, "$maxCapacity"},
		},
	}
	res, err := repo.eventColl.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"currentBookings": count},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("error updating tickets sold for event %s: %w", eventID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event %s: %w", eventID, ErrSoldOut)
	}
	return nil
}

// DecrementTicketsSold returns previously reserved seats, for example when the
// booking insert that followed a successful increment could not be completed.
func (repo *MongoEventRepo) DecrementTicketsSold(eventID string, count int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": eventID, "currentBookings": bson.M{"$gte": count}}
	res, err := repo.eventColl.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"currentBookings": -count},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("error returning tickets for event %s: %w", eventID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event %s has fewer than %d booked tickets", eventID, count)
	}
	return nil
}

func (repo *MongoEventRepo) InsertBooking(booking *models.EventBooking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("error inserting event booking: %w", err)
	}
	return nil
}

func (repo *MongoEventRepo) GetBookingByID(id string) (*models.EventBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var booking models.EventBooking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching event booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoEventRepo) FindBookingsByUser(userID string, page, perPage int) ([]models.EventBooking, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID}
	total, err := repo.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting event bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing event bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.EventBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding event bookings: %w", err)
	}
	return bookings, total, nil
}

func (repo *MongoEventRepo) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repo.eventColl.CountDocuments(ctx, bson.M{})
}
