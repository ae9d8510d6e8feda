package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/coffeecloud/internal/crypto"
	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
	"github.com/iudanet/coffeecloud/internal/validation"
	"github.com/iudanet/coffeecloud/pkg/api"
)

// AuthHandler обрабатывает регистрацию, вход, выход и смену пароля
type AuthHandler struct {
	responder
	userStorage storage.UserStorage
	blacklist   storage.TokenBlacklist
	jwtConfig   JWTConfig
	hashParams  crypto.Params
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	userStorage storage.UserStorage,
	blacklist storage.TokenBlacklist,
	jwtConfig JWTConfig,
) *AuthHandler {
	return &AuthHandler{
		responder:   responder{logger: logger},
		userStorage: userStorage,
		blacklist:   blacklist,
		jwtConfig:   jwtConfig,
		hashParams:  crypto.DefaultParams,
	}
}

// WithPasswordParams overrides the argon2id cost of new password hashes
func (h *AuthHandler) WithPasswordParams(p crypto.Params) *AuthHandler {
	h.hashParams = p
	return h
}

// Register обрабатывает POST /user/registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Сохраняется только argon2id хеш, не сам пароль
	hash, err := crypto.HashPasswordWithParams(req.Password, h.hashParams)
	if err != nil {
		h.internalError(w, r, "failed to hash password", err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Gender:       models.GenderNone,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			h.sendError(w, fmt.Sprintf("user %s already exists", req.Username), http.StatusConflict)
			return
		}
		h.internalError(w, r, "failed to create user", err)
		return
	}

	resp, err := GenerateTokenPair(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.internalError(w, r, "failed to generate tokens", err)
		return
	}
	resp.Message = fmt.Sprintf("User %s was created", user.Username)

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	h.sendJSON(w, resp, http.StatusCreated)
}

// Login обрабатывает POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		h.sendError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, ok := h.checkCredentials(w, r, req.Username, req.Password)
	if !ok {
		return
	}

	resp, err := GenerateTokenPair(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.internalError(w, r, "failed to generate tokens", err)
		return
	}
	resp.Message = fmt.Sprintf("Logged in as %s", user.Username)

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	h.sendJSON(w, resp, http.StatusOK)
}

// LogoutAccess обрабатывает POST /logout/access
// Отзывает предъявленный access token
func (h *AuthHandler) LogoutAccess(w http.ResponseWriter, r *http.Request) {
	h.revokeCurrent(w, r, "Access token has been revoked")
}

// LogoutRefresh обрабатывает POST /logout/refresh
// Отзывает предъявленный refresh token
func (h *AuthHandler) LogoutRefresh(w http.ResponseWriter, r *http.Request) {
	h.revokeCurrent(w, r, "Refresh token has been revoked")
}

func (h *AuthHandler) revokeCurrent(w http.ResponseWriter, r *http.Request, message string) {
	ctx := r.Context()

	claims, ok := GetClaims(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "claims not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.blacklist.RevokeToken(ctx, claims.RevokedToken()); err != nil {
		h.internalError(w, r, "failed to revoke token", err)
		return
	}

	h.logger.InfoContext(ctx, "token revoked",
		slog.Int64("user_id", claims.UserID),
		slog.String("token_type", string(claims.TokenType)))

	h.sendMessage(w, message, http.StatusOK)
}

// ResetPassword обрабатывает POST /user/reset_password
// Требует текущий пароль; предъявленный access token отзывается,
// в ответе выдается новая пара токенов
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := GetClaims(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "claims not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.ResetPasswordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		h.sendError(w, "username and password are required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		h.sendError(w, "new_password: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Менять пароль можно только себе
	if req.Username != claims.Username {
		h.logger.WarnContext(ctx, "reset password for another user",
			slog.String("token_username", claims.Username),
			slog.String("username", req.Username))
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	user, ok := h.checkCredentials(w, r, req.Username, req.Password)
	if !ok {
		return
	}

	hash, err := crypto.HashPasswordWithParams(req.NewPassword, h.hashParams)
	if err != nil {
		h.internalError(w, r, "failed to hash password", err)
		return
	}

	resp, err := GenerateTokenPair(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.internalError(w, r, "failed to generate tokens", err)
		return
	}

	// Токен отзывается до смены пароля: при ошибке отзыва пароль остается прежним
	if err := h.blacklist.RevokeToken(ctx, claims.RevokedToken()); err != nil {
		h.internalError(w, r, "failed to revoke token", err)
		return
	}

	if err := h.userStorage.UpdatePassword(ctx, user.ID, hash); err != nil {
		h.internalError(w, r, "failed to update password", err)
		return
	}

	resp.Message = fmt.Sprintf("Password for %s was changed", user.Username)

	h.logger.InfoContext(ctx, "password changed", slog.Int64("user_id", user.ID))

	h.sendJSON(w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /token/refresh
// Выдает новый access token по refresh token из Authorization header
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := GetClaims(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "claims not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Пользователь мог быть удален вручную из БД
	user, err := h.userStorage.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "refresh for unknown user", slog.Int64("user_id", claims.UserID))
			h.sendError(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.internalError(w, r, "failed to get user", err)
		return
	}

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.internalError(w, r, "failed to generate access token", err)
		return
	}

	h.logger.InfoContext(ctx, "access token refreshed", slog.Int64("user_id", user.ID))

	h.sendJSON(w, api.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}

// checkCredentials ищет пользователя и проверяет пароль
// Неизвестный пользователь и неверный пароль дают одинаковый 401
func (h *AuthHandler) checkCredentials(w http.ResponseWriter, r *http.Request, username, password string) (*models.User, bool) {
	ctx := r.Context()

	user, err := h.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", username))
			h.sendError(w, "invalid credentials", http.StatusUnauthorized)
			return nil, false
		}
		h.internalError(w, r, "failed to get user", err)
		return nil, false
	}

	match, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		h.internalError(w, r, "failed to verify password", err)
		return nil, false
	}
	if !match {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("username", username))
		h.sendError(w, "invalid credentials", http.StatusUnauthorized)
		return nil, false
	}

	return user, true
}
