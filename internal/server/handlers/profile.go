package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/internal/server/storage"
	"github.com/iudanet/coffeecloud/internal/validation"
	"github.com/iudanet/coffeecloud/pkg/api"
)

// ProfileHandler обрабатывает запросы профиля пользователя
type ProfileHandler struct {
	responder
	userStorage storage.UserStorage
	now         func() time.Time
}

// NewProfileHandler создает новый handler профиля
func NewProfileHandler(logger *slog.Logger, userStorage storage.UserStorage) *ProfileHandler {
	return &ProfileHandler{
		responder:   responder{logger: logger},
		userStorage: userStorage,
		now:         time.Now,
	}
}

// GetProfile обрабатывает GET /user_profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	h.sendProfile(w, r, userID)
}

// GetUser обрабатывает GET /user/{id}
func (h *ProfileHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(r.PathValue("id"), "id")
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.sendProfile(w, r, userID)
}

// UpdateProfile обрабатывает POST /user_profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := GetUsername(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "username not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.ProfileUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	gender := models.GenderNone
	if req.Gender != "" {
		g, err := models.ParseGender(req.Gender)
		if err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		gender = g
	}

	if err := validation.ValidatePhone(req.Phone); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	birthday, err := validation.ParseBirthday(req.Birthday, h.now())
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.userStorage.UpdateProfile(ctx, username, req.Phone, gender, birthday); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to update profile", err)
		return
	}

	h.logger.InfoContext(ctx, "profile updated", slog.String("username", username))

	h.sendMessage(w, "Profile updated", http.StatusOK)
}

func (h *ProfileHandler) sendProfile(w http.ResponseWriter, r *http.Request, userID int64) {
	user, err := h.userStorage.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to get user", err)
		return
	}

	p := user.Profile()
	h.sendJSON(w, api.ProfileResponse{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Phone:    p.Phone,
		Gender:   string(p.Gender),
		Birthday: p.Birthday,
	}, http.StatusOK)
}
