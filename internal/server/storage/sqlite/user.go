package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
)

// userColumns - порядок колонок совпадает со scanUser
const userColumns = `id, username, password_hash, email, phone, gender, birthday, created_at`

// CreateUser creates a new user in the storage and sets user.ID
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, phone, gender, birthday, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if user.Gender == "" {
		user.Gender = models.GenderNone
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.Phone,
		string(user.Gender),
		birthdayValue(user.Birthday),
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return scanUser(s.db.QueryRowContext(ctx, query, username))
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(s.db.QueryRowContext(ctx, query, userID))
}

// UpdatePassword replaces the password hash of the user
func (s *Storage) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return expectAffected(result, storage.ErrUserNotFound)
}

// UpdateProfile updates phone, gender and birthday of the user
func (s *Storage) UpdateProfile(
	ctx context.Context,
	username, phone string,
	gender models.Gender,
	birthday *time.Time,
) error {
	query := `
		UPDATE users
		SET phone = ?, gender = ?, birthday = ?
		WHERE username = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		phone,
		string(gender),
		birthdayValue(birthday),
		username,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return expectAffected(result, storage.ErrUserNotFound)
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var (
		gender   string
		birthday sql.NullString
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.Phone,
		&gender,
		&birthday,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Gender = models.Gender(gender)

	if birthday.Valid {
		b, err := time.Parse(models.BirthdayLayout, birthday.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse birthday %q: %w", birthday.String, err)
		}
		user.Birthday = &b
	}

	return user, nil
}

// birthdayValue хранит дату рождения как TEXT "YYYY-MM-DD", nil -> NULL
func birthdayValue(b *time.Time) any {
	if b == nil {
		return nil
	}
	return b.Format(models.BirthdayLayout)
}

// expectAffected returns notFound when the statement touched no rows
func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
