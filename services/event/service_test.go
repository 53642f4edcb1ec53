package event

import (
	"errors"
	"fmt"
	"testing"
	"time"

	eventRepo "buskpod/database/repository/event"
	"buskpod/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEventRepo struct {
	events          map[string]*models.Event
	bookings        []*models.EventBooking
	insertErrs      []error
	incrementCalls  int
	incrementFailAt int // 0 means never fail
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*models.Event)}
}

func (m *mockEventRepo) Insert(ev *models.Event) error {
	m.events[ev.ID] = ev
	return nil
}

func (m *mockEventRepo) GetByID(id string) (*models.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	copied := *ev
	return &copied, nil
}

func (m *mockEventRepo) Update(ev *models.Event) error {
	m.events[ev.ID] = ev
	return nil
}

func (m *mockEventRepo) List(publishedOnly bool, search string, page, perPage int) ([]models.Event, int64, error) {
	var out []models.Event
	for _, ev := range m.events {
		if publishedOnly && !ev.IsPublished {
			continue
		}
		out = append(out, *ev)
	}
	return out, int64(len(out)), nil
}

func (m *mockEventRepo) IncrementTicketsSold(eventID string, count int) error {
	m.incrementCalls++
	if m.incrementFailAt > 0 && m.incrementCalls >= m.incrementFailAt {
		return fmt.Errorf("event %s: %w", eventID, eventRepo.ErrSoldOut)
	}
	ev, ok := m.events[eventID]
	if !ok {
		return fmt.Errorf("event %s: %w", eventID, eventRepo.ErrSoldOut)
	}
	if ev.MaxCapacity > 0 && ev.CurrentBookings+count > ev.MaxCapacity {
		return fmt.Errorf("event %s: %w", eventID, eventRepo.ErrSoldOut)
	}
	ev.CurrentBookings += count
	return nil
}

func (m *mockEventRepo) DecrementTicketsSold(eventID string, count int) error {
	ev, ok := m.events[eventID]
	if !ok || ev.CurrentBookings < count {
		return fmt.Errorf("event %s has fewer than %d booked tickets", eventID, count)
	}
	ev.CurrentBookings -= count
	return nil
}

func (m *mockEventRepo) InsertBooking(bk *models.EventBooking) error {
	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]
		return err
	}
	copied := *bk
	m.bookings = append(m.bookings, &copied)
	return nil
}

func (m *mockEventRepo) GetBookingByID(id string) (*models.EventBooking, error) {
	for _, bk := range m.bookings {
		if bk.ID == id {
			copied := *bk
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockEventRepo) FindBookingsByUser(userID string, page, perPage int) ([]models.EventBooking, int64, error) {
	var out []models.EventBooking
	for _, bk := range m.bookings {
		if bk.UserID == userID {
			out = append(out, *bk)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockEventRepo) CountAll() (int64, error) {
	return int64(len(m.events)), nil
}

func newTestService(repo *mockEventRepo) *DefaultEventService {
	svc := NewDefaultEventService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func seedEvent(repo *mockEventRepo, capacity, sold int) *models.Event {
	ev := &models.Event{
		ID:              "ev-1",
		Title:           "Acoustic Night",
		Venue:           "Pavilion Stage",
		City:            "Kuala Lumpur",
		EventDate:       "2026-10-20",
		StartTime:       "19:00",
		EndTime:         "22:00",
		TicketPrice:     35,
		MaxCapacity:     capacity,
		CurrentBookings: sold,
		IsPublished:     true,
	}
	repo.events[ev.ID] = ev
	return ev
}

func TestBookTicketsSuccess(t *testing.T) {
	repo := newMockEventRepo()
	seedEvent(repo, 100, 10)
	svc := newTestService(repo)

	bk, err := svc.BookTickets("user-1", "ev-1", 3, "bank_transfer")
	require.NoError(t, err)
	assert.Equal(t, 3, bk.TicketsCount)
	assert.Equal(t, float64(105), bk.TotalAmount)
	assert.Equal(t, models.BookingConfirmed, bk.Status)
	assert.Regexp(t, `^EVT[A-Z0-9]{6}$`, bk.BookingReference)
	assert.Equal(t, 13, repo.events["ev-1"].CurrentBookings)
}

func TestBookTicketsInvalidCount(t *testing.T) {
	repo := newMockEventRepo()
	seedEvent(repo, 100, 0)
	svc := newTestService(repo)

	_, err := svc.BookTickets("user-1", "ev-1", 0, "bank_transfer")
	assert.ErrorIs(t, err, ErrInvalidTickets)
}

func TestBookTicketsOverCapacity(t *testing.T) {
	repo := newMockEventRepo()
	seedEvent(repo, 100, 98)
	svc := newTestService(repo)

	_, err := svc.BookTickets("user-1", "ev-1", 3, "bank_transfer")
	assert.ErrorIs(t, err, ErrEventSoldOut)
	assert.Equal(t, 98, repo.events["ev-1"].CurrentBookings)
}

func TestBookTicketsCounterGuard(t *testing.T) {
	// The pre-check passes on a stale read but the counter update refuses.
	repo := newMockEventRepo()
	seedEvent(repo, 100, 10)
	repo.incrementFailAt = 1
	svc := newTestService(repo)

	_, err := svc.BookTickets("user-1", "ev-1", 3, "bank_transfer")
	assert.ErrorIs(t, err, ErrEventSoldOut)
}

func TestBookTicketsUnpublishedEvent(t *testing.T) {
	repo := newMockEventRepo()
	ev := seedEvent(repo, 100, 0)
	ev.IsPublished = false
	svc := newTestService(repo)

	_, err := svc.BookTickets("user-1", "ev-1", 1, "bank_transfer")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestBookTicketsReferenceRetry(t *testing.T) {
	repo := newMockEventRepo()
	seedEvent(repo, 100, 0)
	repo.insertErrs = []error{eventRepo.ErrDuplicateReference, eventRepo.ErrDuplicateReference}
	svc := newTestService(repo)

	bk, err := svc.BookTickets("user-1", "ev-1", 2, "bank_transfer")
	require.NoError(t, err)
	assert.NotEmpty(t, bk.BookingReference)
	require.Len(t, repo.bookings, 1)
}

func TestBookTicketsReturnsSeatsOnInsertFailure(t *testing.T) {
	repo := newMockEventRepo()
	seedEvent(repo, 2, 0)
	repo.insertErrs = []error{errors.New("write concern error")}
	svc := newTestService(repo)

	_, err := svc.BookTickets("user-1", "ev-1", 2, "bank_transfer")
	require.Error(t, err)
	assert.Equal(t, 0, repo.events["ev-1"].CurrentBookings)
	assert.Empty(t, repo.bookings)

	// The seats freed by the failed purchase must be sellable again.
	bk, err := svc.BookTickets("user-2", "ev-1", 1, "bank_transfer")
	require.NoError(t, err)
	assert.Equal(t, 1, bk.TicketsCount)
	assert.Equal(t, 1, repo.events["ev-1"].CurrentBookings)
}

func TestBookTicketsReturnsSeatsOnRetryExhaustion(t *testing.T) {
	repo := newMockEventRepo()
	seedEvent(repo, 100, 10)
	repo.insertErrs = []error{
		eventRepo.ErrDuplicateReference,
		eventRepo.ErrDuplicateReference,
		eventRepo.ErrDuplicateReference,
		eventRepo.ErrDuplicateReference,
		eventRepo.ErrDuplicateReference,
	}
	svc := newTestService(repo)

	_, err := svc.BookTickets("user-1", "ev-1", 3, "bank_transfer")
	require.Error(t, err)
	assert.Equal(t, 10, repo.events["ev-1"].CurrentBookings)
	assert.Empty(t, repo.bookings)
}

func TestListReturnsPublishedOnly(t *testing.T) {
	repo := newMockEventRepo()
	seedEvent(repo, 100, 0)
	repo.events["ev-2"] = &models.Event{ID: "ev-2", Title: "Draft Show", IsPublished: false}
	svc := newTestService(repo)

	page, err := svc.List("", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestSetPublished(t *testing.T) {
	repo := newMockEventRepo()
	ev := seedEvent(repo, 100, 0)
	ev.IsPublished = false
	svc := newTestService(repo)

	updated, err := svc.SetPublished("ev-1", true)
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)

	got, err := svc.GetByID("ev-1")
	require.NoError(t, err)
	assert.True(t, got.IsPublished)
}
