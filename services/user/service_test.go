package user

import (
	"testing"
	"time"

	"buskpod/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) Insert(u *models.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(u *models.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) SetActive(id string, active bool) error {
	if u, ok := m.users[id]; ok {
		u.IsActive = active
	}
	return nil
}

func (m *mockUserRepo) List(search, userType string, isActive *bool, page, perPage int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepo) CountAll() (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) CountActiveSince(since time.Time) (int64, error) {
	return 0, nil
}

func newTestService(repo *mockUserRepo, revoked *[]string) *DefaultUserService {
	return &DefaultUserService{
		Repo: repo,
		now: func() time.Time {
			return time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
		},
		revokeSession: func(subjectID string) error {
			*revoked = append(*revoked, subjectID)
			return nil
		},
	}
}

func seedUser(repo *mockUserRepo, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &models.User{
		ID:           "user-1",
		Email:        "amir@example.com",
		PasswordHash: string(hash),
		FullName:     "Amir Rahman",
		IsActive:     true,
		UserType:     models.AccountTypeUser,
	}
	repo.users[u.ID] = u
	return u
}

func TestResetPassword(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "oldpassword")
	var revoked []string
	svc := newTestService(repo, &revoked)

	err := svc.ResetPassword("amir@example.com", "newpassword1")
	require.NoError(t, err)

	stored := repo.users["user-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("oldpassword")))
	assert.Equal(t, []string{"user-1"}, revoked)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "oldpassword")
	var revoked []string
	svc := newTestService(repo, &revoked)

	err := svc.ResetPassword("nobody@example.com", "newpassword1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, revoked)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "oldpassword")
	var revoked []string
	svc := newTestService(repo, &revoked)

	err := svc.ChangePassword("user-1", "wrongpassword", "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored := repo.users["user-1"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("oldpassword")))
}
