package scheduling

import (
	"testing"

	"buskpod/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPodGetter struct {
	pod *models.Pod
	err error
}

func (s *stubPodGetter) GetByID(id string) (*models.Pod, error) {
	return s.pod, s.err
}

type stubBookingFinder struct {
	bookings []models.PodBooking
	err      error
}

func (s *stubBookingFinder) FindForPodDate(podID, date string, statuses []models.BookingStatus) ([]models.PodBooking, error) {
	return s.bookings, s.err
}

func slot(start, end string, price float64) models.TimeSlot {
	return models.TimeSlot{Start: start, End: end, Price: price}
}

func TestAllSlots(t *testing.T) {
	slots := AllSlots(Hours{Open: 9, Close: 21}, 25)

	require.Len(t, slots, 12)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "10:00", slots[0].End)
	assert.Equal(t, "20:00", slots[11].Start)
	assert.Equal(t, "21:00", slots[11].End)

	// Contiguous grid: no gaps between consecutive slots.
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
	for _, s := range slots {
		assert.Equal(t, 25.0, s.Price)
	}
}

func TestValidateSlots(t *testing.T) {
	tests := []struct {
		name    string
		slots   []models.TimeSlot
		wantErr bool
	}{
		{"valid single slot", []models.TimeSlot{slot("10:00", "11:00", 25)}, false},
		{"valid multiple slots", []models.TimeSlot{slot("09:00", "10:00", 25), slot("14:00", "15:00", 25)}, false},
		{"empty", nil, true},
		{"bad format", []models.TimeSlot{slot("9:00", "10:00", 25)}, true},
		{"hour out of range", []models.TimeSlot{slot("24:00", "25:00", 25)}, true},
		{"start equals end", []models.TimeSlot{slot("10:00", "10:00", 25)}, true},
		{"start after end", []models.TimeSlot{slot("11:00", "10:00", 25)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlots(tt.slots)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckConflicts(t *testing.T) {
	occupied := []models.TimeSlot{slot("10:00", "11:00", 25)}

	t.Run("exact match is a conflict", func(t *testing.T) {
		err := CheckConflicts([]models.TimeSlot{slot("10:00", "11:00", 25)}, occupied)
		require.Error(t, err)
		assert.Equal(t, "time slot 10:00-11:00 is already booked", err.Error())
	})

	t.Run("partial overlap is not a conflict", func(t *testing.T) {
		err := CheckConflicts([]models.TimeSlot{slot("10:00", "12:00", 50)}, occupied)
		assert.NoError(t, err)
	})

	t.Run("disjoint slot is not a conflict", func(t *testing.T) {
		err := CheckConflicts([]models.TimeSlot{slot("14:00", "15:00", 25)}, occupied)
		assert.NoError(t, err)
	})

	t.Run("no occupied slots", func(t *testing.T) {
		err := CheckConflicts([]models.TimeSlot{slot("10:00", "11:00", 25)}, nil)
		assert.NoError(t, err)
	})
}

func TestAvailabilityEmptyDay(t *testing.T) {
	svc := &Service{
		Bookings: &stubBookingFinder{},
		Pods:     &stubPodGetter{pod: &models.Pod{ID: "pod-1", PricePerHour: 30, IsActive: true}},
		Hours:    Hours{Open: 9, Close: 21},
	}

	avail, err := svc.Availability("pod-1", "2026-10-01")
	require.NoError(t, err)

	assert.Equal(t, "2026-10-01", avail.Date)
	assert.Len(t, avail.AvailableSlots, 12)
	assert.Empty(t, avail.BookedSlots)
	assert.Equal(t, "09:00", avail.AvailableSlots[0].Start)
	assert.Equal(t, "21:00", avail.AvailableSlots[11].End)
}

func TestAvailabilityWithBookings(t *testing.T) {
	finder := &stubBookingFinder{bookings: []models.PodBooking{
		{TimeSlots: []models.TimeSlot{slot("10:00", "11:00", 30), slot("11:00", "12:00", 30)}},
	}}
	svc := &Service{
		Bookings: finder,
		Pods:     &stubPodGetter{pod: &models.Pod{ID: "pod-1", PricePerHour: 30, IsActive: true}},
		Hours:    Hours{Open: 9, Close: 21},
	}

	avail, err := svc.Availability("pod-1", "2026-10-01")
	require.NoError(t, err)

	assert.Len(t, avail.AvailableSlots, 10)
	assert.Len(t, avail.BookedSlots, 2)
	for _, s := range avail.AvailableSlots {
		assert.NotEqual(t, "10:00", s.Start)
		assert.NotEqual(t, "11:00", s.Start)
	}
}

func TestAvailabilityIdempotent(t *testing.T) {
	svc := &Service{
		Bookings: &stubBookingFinder{},
		Pods:     &stubPodGetter{pod: &models.Pod{ID: "pod-1", PricePerHour: 30, IsActive: true}},
		Hours:    Hours{Open: 9, Close: 21},
	}

	first, err := svc.Availability("pod-1", "2026-10-01")
	require.NoError(t, err)
	second, err := svc.Availability("pod-1", "2026-10-01")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAvailabilityUnknownPod(t *testing.T) {
	svc := &Service{
		Bookings: &stubBookingFinder{},
		Pods:     &stubPodGetter{pod: nil},
		Hours:    Hours{Open: 9, Close: 21},
	}

	_, err := svc.Availability("missing", "2026-10-01")
	assert.ErrorIs(t, err, ErrPodNotFound)
}

func TestAvailabilityInactivePod(t *testing.T) {
	svc := &Service{
		Bookings: &stubBookingFinder{},
		Pods:     &stubPodGetter{pod: &models.Pod{ID: "pod-1", IsActive: false}},
		Hours:    Hours{Open: 9, Close: 21},
	}

	_, err := svc.Availability("pod-1", "2026-10-01")
	assert.ErrorIs(t, err, ErrPodNotFound)
}
