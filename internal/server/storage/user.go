package storage

import (
	"context"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user and sets user.ID
	// Returns ErrUserAlreadyExists if username is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// UpdatePassword replaces the password hash of the user
	// Returns ErrUserNotFound if user doesn't exist
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// UpdateProfile updates phone, gender and birthday of the user identified by username
	// Returns ErrUserNotFound if user doesn't exist
	UpdateProfile(ctx context.Context, username, phone string, gender models.Gender, birthday *time.Time) error
}
