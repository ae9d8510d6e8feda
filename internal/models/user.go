package models

import "time"

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time  `json:"created_at"`         // время регистрации
	Birthday     *time.Time `json:"birthday,omitempty"` // дата рождения (опционально)
	Username     string     `json:"username"`           // уникальный username
	PasswordHash string     `json:"-"`                  // argon2id хеш пароля (PHC формат)
	Email        string     `json:"email"`              // email, по умолчанию пустая строка
	Phone        string     `json:"phone,omitempty"`    // телефон (опционально)
	Gender       Gender     `json:"gender"`             // пол, по умолчанию "none"
	ID           int64      `json:"id"`                 // ID пользователя
}

// Profile is the public view of a User returned by the profile endpoints.
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   Gender `json:"gender"`
	Birthday string `json:"birthday"`
}

// BirthdayLayout is the wire format of User.Birthday.
const BirthdayLayout = "2006-01-02"

// Profile returns the public profile of the user.
func (u *User) Profile() Profile {
	p := Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Gender:   u.Gender,
	}
	if u.Birthday != nil {
		p.Birthday = u.Birthday.Format(BirthdayLayout)
	}
	return p
}

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// RevokedToken представляет отозванный токен (blacklist)
type RevokedToken struct {
	ExpiresAt time.Time `json:"expires_at"` // естественное истечение токена
	RevokedAt time.Time `json:"revoked_at"` // время отзыва
	JTI       string    `json:"jti"`        // уникальный идентификатор токена
	Type      TokenType `json:"type"`       // access или refresh
}
