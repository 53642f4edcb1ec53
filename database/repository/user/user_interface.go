package userRepo

import (
	"time"

	"buskpod/models"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Insert(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	SetActive(id string, active bool) error
	List(search, userType string, isActive *bool, page, perPage int) ([]models.User, int64, error)
	CountAll() (int64, error)
	CountActiveSince(since time.Time) (int64, error)
}
