package booking

import (
	"testing"
	"time"

	bookingRepo "buskpod/database/repository/booking"
	podRepo "buskpod/database/repository/pod"
	"buskpod/models"
	"buskpod/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookingRepo struct {
	bookings       map[string]*models.PodBooking
	forPodDate     []models.PodBooking
	insertErrs     []error
	inserted       []*models.PodBooking
	updated        []*models.PodBooking
	releasedClaims []string
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*models.PodBooking)}
}

func (m *mockBookingRepo) Insert(bk *models.PodBooking) error {
	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	m.inserted = append(m.inserted, bk)
	m.bookings[bk.ID] = bk
	return nil
}

func (m *mockBookingRepo) GetByID(id string) (*models.PodBooking, error) {
	return m.bookings[id], nil
}

func (m *mockBookingRepo) Update(bk *models.PodBooking) error {
	m.updated = append(m.updated, bk)
	m.bookings[bk.ID] = bk
	return nil
}

func (m *mockBookingRepo) ReleaseClaims(bookingID string) error {
	m.releasedClaims = append(m.releasedClaims, bookingID)
	return nil
}

func (m *mockBookingRepo) FindForPodDate(podID, date string, statuses []models.BookingStatus) ([]models.PodBooking, error) {
	return m.forPodDate, nil
}

func (m *mockBookingRepo) FindByUser(userID, status string, page, perPage int) ([]models.PodBooking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingRepo) FindAll(filters bookingRepo.AdminFilters, page, perPage int) ([]models.PodBooking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingRepo) FindConfirmedBefore(date string) ([]models.PodBooking, error) {
	return nil, nil
}

func (m *mockBookingRepo) CountAll() (int64, error) { return 0, nil }

func (m *mockBookingRepo) SumConfirmedRevenue() (float64, error) { return 0, nil }

type mockPodRepo struct {
	pod *models.Pod
}

func (m *mockPodRepo) Insert(pod *models.Pod) error                { return nil }
func (m *mockPodRepo) GetByID(id string) (*models.Pod, error)      { return m.pod, nil }
func (m *mockPodRepo) Update(pod *models.Pod) error                { return nil }
func (m *mockPodRepo) SetActive(id string, active bool) error      { return nil }
func (m *mockPodRepo) List(filters podRepo.ListFilters, page, perPage int) ([]models.Pod, int64, error) {
	return nil, 0, nil
}
func (m *mockPodRepo) Search(query string, page, perPage int) ([]models.Pod, int64, error) {
	return nil, 0, nil
}

type recordingNotifier struct {
	created []string
	status  []string
}

func (n *recordingNotifier) BookingCreated(bk *models.PodBooking) {
	n.created = append(n.created, bk.ID)
}

func (n *recordingNotifier) BookingStatusChanged(bk *models.PodBooking) {
	n.status = append(n.status, bk.ID)
}

// fixedNow is mid-afternoon so "tomorrow" is unambiguous.
var fixedNow = time.Date(2026, 10, 1, 15, 0, 0, 0, time.UTC)

func newTestService(repo *mockBookingRepo, pods *mockPodRepo) (*DefaultBookingService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return &DefaultBookingService{
		Repo:     repo,
		Pods:     pods,
		Notifier: notifier,
		Hours:    scheduling.Hours{Open: 9, Close: 21},
		now:      func() time.Time { return fixedNow },
	}, notifier
}

func activePod() *models.Pod {
	return &models.Pod{ID: "pod-1", Name: "Atrium Pod", PricePerHour: 25, IsActive: true}
}

func createReq(date string, slots ...models.TimeSlot) CreateBookingRequest {
	if len(slots) == 0 {
		slots = []models.TimeSlot{{Start: "10:00", End: "11:00", Price: 25}}
	}
	return CreateBookingRequest{
		UserID:      "user-1",
		PodID:       "pod-1",
		BookingDate: date,
		TimeSlots:   slots,
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newMockBookingRepo()
	svc, notifier := newTestService(repo, &mockPodRepo{pod: activePod()})

	bk, err := svc.Create(createReq("2026-10-02",
		models.TimeSlot{Start: "10:00", End: "11:00", Price: 25},
		models.TimeSlot{Start: "11:00", End: "12:00", Price: 25},
	))
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, bk.Status)
	assert.Equal(t, models.PaymentPending, bk.PaymentStatus)
	assert.Equal(t, 50.0, bk.TotalAmount)
	assert.Len(t, bk.BookingReference, 10)
	assert.Equal(t, "BOOK", bk.BookingReference[:4])
	assert.Regexp(t, `^BOOK[A-Z0-9]{6}$`, bk.BookingReference)
	assert.Equal(t, []string{bk.ID}, notifier.created)
}

func TestCreateBookingDateChecks(t *testing.T) {
	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"tomorrow accepted", "2026-10-02", true},
		{"today rejected", "2026-10-01", false},
		{"past rejected", "2026-09-30", false},
		{"malformed rejected", "02-10-2026", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(newMockBookingRepo(), &mockPodRepo{pod: activePod()})
			_, err := svc.Create(createReq(tt.date))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsInvalidInput(err), "expected invalidInput, got %v", err)
			}
		})
	}
}

func TestCreateBookingOutsideOperatingHours(t *testing.T) {
	svc, _ := newTestService(newMockBookingRepo(), &mockPodRepo{pod: activePod()})

	_, err := svc.Create(createReq("2026-10-02", models.TimeSlot{Start: "08:00", End: "09:00", Price: 25}))
	assert.True(t, IsInvalidInput(err))

	_, err = svc.Create(createReq("2026-10-02", models.TimeSlot{Start: "20:00", End: "22:00", Price: 50}))
	assert.True(t, IsInvalidInput(err))
}

func TestCreateBookingUnknownPod(t *testing.T) {
	svc, _ := newTestService(newMockBookingRepo(), &mockPodRepo{pod: nil})
	_, err := svc.Create(createReq("2026-10-02"))
	assert.True(t, IsNotFound(err))
}

func TestCreateBookingExactSlotConflict(t *testing.T) {
	repo := newMockBookingRepo()
	repo.forPodDate = []models.PodBooking{
		{TimeSlots: []models.TimeSlot{{Start: "10:00", End: "11:00", Price: 25}}},
	}
	svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

	_, err := svc.Create(createReq("2026-10-02"))
	require.True(t, IsConflict(err))
	assert.Contains(t, err.Error(), "10:00-11:00")
}

func TestCreateBookingOverlapIsNotConflict(t *testing.T) {
	repo := newMockBookingRepo()
	repo.forPodDate = []models.PodBooking{
		{TimeSlots: []models.TimeSlot{{Start: "10:00", End: "11:00", Price: 25}}},
	}
	svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

	// Overlapping interval with different boundaries is accepted.
	bk, err := svc.Create(createReq("2026-10-02", models.TimeSlot{Start: "10:00", End: "12:00", Price: 50}))
	require.NoError(t, err)
	assert.Equal(t, 50.0, bk.TotalAmount)
}

func TestCreateBookingConcurrentClaimLoss(t *testing.T) {
	repo := newMockBookingRepo()
	repo.insertErrs = []error{bookingRepo.ErrSlotTaken}
	svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

	_, err := svc.Create(createReq("2026-10-02"))
	assert.True(t, IsConflict(err))
}

func TestCreateBookingReferenceRetry(t *testing.T) {
	repo := newMockBookingRepo()
	repo.insertErrs = []error{bookingRepo.ErrDuplicateReference, bookingRepo.ErrDuplicateReference}
	svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

	bk, err := svc.Create(createReq("2026-10-02"))
	require.NoError(t, err)
	assert.Regexp(t, `^BOOK[A-Z0-9]{6}$`, bk.BookingReference)
	assert.Len(t, repo.inserted, 1)
}

func TestCancelBooking(t *testing.T) {
	tests := []struct {
		name     string
		booking  models.PodBooking
		userID   string
		wantCode string
	}{
		{
			name:    "pending well in advance",
			booking: models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingPending, BookingDate: "2026-10-10"},
			userID:  "user-1",
		},
		{
			name:    "confirmed well in advance",
			booking: models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingConfirmed, BookingDate: "2026-10-10"},
			userID:  "user-1",
		},
		{
			name:     "wrong owner",
			booking:  models.PodBooking{ID: "b1", UserID: "user-2", Status: models.BookingPending, BookingDate: "2026-10-10"},
			userID:   "user-1",
			wantCode: CodeForbidden,
		},
		{
			name:     "already cancelled",
			booking:  models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingCancelled, BookingDate: "2026-10-10"},
			userID:   "user-1",
			wantCode: CodeConflict,
		},
		{
			name:     "completed",
			booking:  models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingCompleted, BookingDate: "2026-10-10"},
			userID:   "user-1",
			wantCode: CodeConflict,
		},
		{
			// now is Oct 1 15:00; window for an Oct 2 booking closed Oct 1 00:00.
			name:     "inside 24h window",
			booking:  models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingPending, BookingDate: "2026-10-02"},
			userID:   "user-1",
			wantCode: CodeForbidden,
		},
		{
			// Window for an Oct 3 booking closes Oct 2 00:00, still open.
			name:    "just outside 24h window",
			booking: models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingPending, BookingDate: "2026-10-03"},
			userID:  "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockBookingRepo()
			bk := tt.booking
			repo.bookings[bk.ID] = &bk
			svc, notifier := newTestService(repo, &mockPodRepo{pod: activePod()})

			got, err := svc.Cancel(bk.ID, tt.userID)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, codeIs(err, tt.wantCode), "expected %s, got %v", tt.wantCode, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.BookingCancelled, got.Status)
			assert.Equal(t, []string{bk.ID}, repo.releasedClaims)
			assert.Equal(t, []string{bk.ID}, notifier.status)
		})
	}
}

func TestCancelUnknownBooking(t *testing.T) {
	svc, _ := newTestService(newMockBookingRepo(), &mockPodRepo{pod: activePod()})
	_, err := svc.Cancel("missing", "user-1")
	assert.True(t, IsNotFound(err))
}

func TestUploadPaymentProof(t *testing.T) {
	repo := newMockBookingRepo()
	repo.bookings["b1"] = &models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingPending}
	svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

	bk, err := svc.UploadPaymentProof("b1", "user-1", "https://cdn.example/proof.png", "TXN-42")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/proof.png", bk.PaymentScreenshotURL)
	assert.Equal(t, "TXN-42", bk.PaymentReference)
	require.NotNil(t, bk.PaymentUploadedAt)
	assert.Equal(t, fixedNow, *bk.PaymentUploadedAt)
}

func TestUploadPaymentProofGuards(t *testing.T) {
	repo := newMockBookingRepo()
	repo.bookings["b1"] = &models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingCancelled}
	svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

	_, err := svc.UploadPaymentProof("b1", "user-1", "url", "")
	assert.True(t, IsConflict(err))

	repo.bookings["b2"] = &models.PodBooking{ID: "b2", UserID: "user-2", Status: models.BookingPending}
	_, err = svc.UploadPaymentProof("b2", "user-1", "url", "")
	assert.True(t, IsForbidden(err))
}

func TestVerifyPayment(t *testing.T) {
	t.Run("verified confirms booking", func(t *testing.T) {
		repo := newMockBookingRepo()
		repo.bookings["b1"] = &models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingPending, PaymentStatus: models.PaymentPending}
		svc, notifier := newTestService(repo, &mockPodRepo{pod: activePod()})

		bk, err := svc.VerifyPayment("b1", "admin-1", "verified")
		require.NoError(t, err)
		assert.Equal(t, models.BookingConfirmed, bk.Status)
		assert.Equal(t, models.PaymentVerified, bk.PaymentStatus)
		assert.Equal(t, "admin-1", bk.PaymentVerifiedBy)
		require.NotNil(t, bk.PaymentVerifiedAt)
		assert.Empty(t, repo.releasedClaims)
		assert.Equal(t, []string{"b1"}, notifier.status)
	})

	t.Run("rejected cancels booking and frees slots", func(t *testing.T) {
		repo := newMockBookingRepo()
		repo.bookings["b1"] = &models.PodBooking{ID: "b1", UserID: "user-1", Status: models.BookingPending, PaymentStatus: models.PaymentPending}
		svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

		bk, err := svc.VerifyPayment("b1", "admin-1", "rejected")
		require.NoError(t, err)
		assert.Equal(t, models.BookingCancelled, bk.Status)
		assert.Equal(t, models.PaymentRejected, bk.PaymentStatus)
		assert.Equal(t, []string{"b1"}, repo.releasedClaims)
	})

	t.Run("unknown decision", func(t *testing.T) {
		repo := newMockBookingRepo()
		repo.bookings["b1"] = &models.PodBooking{ID: "b1", PaymentStatus: models.PaymentPending}
		svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

		_, err := svc.VerifyPayment("b1", "admin-1", "maybe")
		assert.True(t, IsInvalidInput(err))
	})

	t.Run("already reviewed", func(t *testing.T) {
		repo := newMockBookingRepo()
		repo.bookings["b1"] = &models.PodBooking{ID: "b1", PaymentStatus: models.PaymentVerified}
		svc, _ := newTestService(repo, &mockPodRepo{pod: activePod()})

		_, err := svc.VerifyPayment("b1", "admin-1", "verified")
		assert.True(t, IsConflict(err))
	})
}
