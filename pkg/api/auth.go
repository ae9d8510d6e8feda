package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"`        // username пользователя
	Password string `json:"password"`        // пароль в открытом виде, хешируется сервером
	Email    string `json:"email,omitempty"` // email (опционально)
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest представляет запрос на смену пароля
type ResetPasswordRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`     // текущий пароль
	NewPassword string `json:"new_password"` // новый пароль
}

// TokenResponse представляет ответ с парой токенов
type TokenResponse struct {
	Message      string `json:"message,omitempty"`
	AccessToken  string `json:"access_token"`  // JWT access token
	RefreshToken string `json:"refresh_token"` // JWT refresh token
	ExpiresIn    int64  `json:"expires_in"`    // время жизни access token в секундах
}

// AccessTokenResponse представляет ответ на обновление access token
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// MessageResponse представляет простое подтверждение операции
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // текст HTTP статуса
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// ProfileResponse представляет профиль пользователя
type ProfileResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Birthday string `json:"birthday"` // YYYY-MM-DD или пустая строка
	ID       int64  `json:"id"`
}

// ProfileUpdateRequest представляет запрос на обновление профиля
type ProfileUpdateRequest struct {
	Gender   string `json:"gender"`   // none, male, female
	Phone    string `json:"phone"`    // цифры, пробелы, дефисы
	Birthday string `json:"birthday"` // YYYY-MM-DD, пустая строка очищает
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"`
}
