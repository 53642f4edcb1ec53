package bookingRepo

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

var (
	// ErrSlotTaken is returned when a slot claim hits the unique index,
	// meaning a concurrent booking already holds one of the requested slots.
	ErrSlotTaken = errors.New("time slot already claimed")
	// ErrDuplicateReference is returned when the generated booking reference
	// collides with an existing one.
	ErrDuplicateReference = errors.New("booking reference already exists")
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	claimColl   *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl: database.Collection("pod_bookings"),
		claimColl:   database.Collection("slot_claims"),
	}
}

// EnsureIndexes creates the unique booking-reference index and the unique
// slot-claim index that guards against double booking.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	if _, err := repo.bookingColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingReference", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := repo.claimColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "podId", Value: 1},
			{Key: "bookingDate", Value: 1},
			{Key: "start", Value: 1},
			{Key: "end", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Insert claims every requested slot, then persists the booking. A duplicate
// key on the claim insert surfaces as ErrSlotTaken; on the booking insert, as
// ErrDuplicateReference. Claims are rolled back if the booking insert fails.
func (repo *MongoBookingRepo) Insert(booking *models.PodBooking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	claims := make([]interface{}, 0, len(booking.TimeSlots))
	now := time.Now()
	for _, slot := range booking.TimeSlots {
		claims = append(claims, models.SlotClaim{
			PodID:       booking.PodID,
			BookingDate: booking.BookingDate,
			Start:       slot.Start,
			End:         slot.End,
			BookingID:   booking.ID,
			CreatedAt:   now,
		})
	}
	if _, err := repo.claimColl.InsertMany(ctx, claims); err != nil {
		repo.releaseClaims(ctx, booking.ID)
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error claiming slots: %w", err)
	}

	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		repo.releaseClaims(ctx, booking.ID)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(id string) (*models.PodBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var booking models.PodBooking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", id, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) Update(booking *models.PodBooking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	res, err := repo.bookingColl.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	return nil
}

// ReleaseClaims frees the slots held by a booking, making them bookable again.
func (repo *MongoBookingRepo) ReleaseClaims(bookingID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repo.releaseClaims(ctx, bookingID)
}

func (repo *MongoBookingRepo) releaseClaims(ctx context.Context, bookingID string) error {
	if _, err := repo.claimColl.DeleteMany(ctx, bson.M{"bookingId": bookingID}); err != nil {
		return fmt.Errorf("error releasing slot claims for booking %s: %w", bookingID, err)
	}
	return nil
}

// FindForPodDate returns bookings for a pod on a date limited to the given statuses.
func (repo *MongoBookingRepo) FindForPodDate(podID, date string, statuses []models.BookingStatus) ([]models.PodBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"podId":       podID,
		"bookingDate": date,
		"status":      bson.M{"$in": statuses},
	}
	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings for pod %s on %s: %w", podID, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.PodBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) FindByUser(userID, status string, page, perPage int) ([]models.PodBooking, int64, error) {
	filter := bson.M{"userId": userID}
	if status != "" {
		filter["status"] = status
	}
	return repo.findPaged(filter, page, perPage)
}

func (repo *MongoBookingRepo) FindAll(filters AdminFilters, page, perPage int) ([]models.PodBooking, int64, error) {
	filter := bson.M{}
	if filters.Status != "" {
		filter["status"] = filters.Status
	}
	if filters.PaymentStatus != "" {
		filter["paymentStatus"] = filters.PaymentStatus
	}
	dateRange := bson.M{}
	if filters.DateFrom != "" {
		dateRange["$gte"] = filters.DateFrom
	}
	if filters.DateTo != "" {
		dateRange["$lte"] = filters.DateTo
	}
	if len(dateRange) > 0 {
		filter["bookingDate"] = dateRange
	}
	return repo.findPaged(filter, page, perPage)
}

func (repo *MongoBookingRepo) findPaged(filter bson.M, page, perPage int) ([]models.PodBooking, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	total, err := repo.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.PodBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, total, nil
}

// FindConfirmedBefore returns confirmed bookings whose date is before the
// given date, used by the completion sweep.
func (repo *MongoBookingRepo) FindConfirmedBefore(date string) ([]models.PodBooking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":      models.BookingConfirmed,
		"bookingDate": bson.M{"$lt": date},
	}
	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding confirmed bookings before %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.PodBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) CountAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return repo.bookingColl.CountDocuments(ctx, bson.M{})
}

// SumConfirmedRevenue totals the amounts of confirmed bookings.
func (repo *MongoBookingRepo) SumConfirmedRevenue() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.BookingConfirmed}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}}},
	}
	cursor, err := repo.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding revenue aggregate: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
