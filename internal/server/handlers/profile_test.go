package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coffeecloud/internal/models"
	"github.com/iudanet/coffeecloud/pkg/api"
)

func TestProfileHandler_GetProfile(t *testing.T) {
	s := setupTestStorage(t)
	h := NewProfileHandler(setupTestLogger(), s)
	user := createTestUser(t, s, "barista", "espresso123")

	w := httptest.NewRecorder()
	h.GetProfile(w, newRequest(t, http.MethodGet, "/user_profile", nil,
		testClaims(user.ID, user.Username, models.TokenTypeAccess)))

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ProfileResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "barista", resp.Username)
	assert.Equal(t, "none", resp.Gender)
	assert.Empty(t, resp.Birthday)
}

func TestProfileHandler_GetProfile_Unauthorized(t *testing.T) {
	h := NewProfileHandler(setupTestLogger(), setupTestStorage(t))

	w := httptest.NewRecorder()
	h.GetProfile(w, newRequest(t, http.MethodGet, "/user_profile", nil, nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileHandler_GetUser(t *testing.T) {
	s := setupTestStorage(t)
	h := NewProfileHandler(setupTestLogger(), s)
	user := createTestUser(t, s, "barista", "espresso123")

	tests := []struct {
		name     string
		id       string
		wantCode int
	}{
		{name: "existing user", id: "1", wantCode: http.StatusOK},
		{name: "missing user", id: "99", wantCode: http.StatusNotFound},
		{name: "not a number", id: "abc", wantCode: http.StatusBadRequest},
		{name: "zero id", id: "0", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(t, http.MethodGet, "/user/"+tt.id, nil, nil)
			req.SetPathValue("id", tt.id)

			w := httptest.NewRecorder()
			h.GetUser(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				var resp api.ProfileResponse
				decodeBody(t, w, &resp)
				assert.Equal(t, user.ID, resp.ID)
			}
		})
	}
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	tests := []struct {
		req         api.ProfileUpdateRequest
		name        string
		wantGender  models.Gender
		wantBirth   string
		wantMessage string
		wantCode    int
	}{
		{
			name:        "full update",
			req:         api.ProfileUpdateRequest{Gender: "female", Phone: "+1 555-0100", Birthday: "1990-03-04"},
			wantCode:    http.StatusOK,
			wantGender:  models.GenderFemale,
			wantBirth:   "1990-03-04",
			wantMessage: "Profile updated",
		},
		{
			name:        "empty gender defaults to none",
			req:         api.ProfileUpdateRequest{Phone: "5550100"},
			wantCode:    http.StatusOK,
			wantGender:  models.GenderNone,
			wantMessage: "Profile updated",
		},
		{
			name:        "unknown gender",
			req:         api.ProfileUpdateRequest{Gender: "robot"},
			wantCode:    http.StatusBadRequest,
			wantMessage: `gender: "robot" is not one of [none male female]`,
		},
		{
			name:        "bad phone",
			req:         api.ProfileUpdateRequest{Phone: "call me"},
			wantCode:    http.StatusBadRequest,
			wantMessage: "phone must contain 3-20 digits, spaces or dashes",
		},
		{
			name:        "future birthday",
			req:         api.ProfileUpdateRequest{Birthday: "2031-01-01"},
			wantCode:    http.StatusBadRequest,
			wantMessage: "birthday cannot be in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestStorage(t)
			h := NewProfileHandler(setupTestLogger(), s)
			h.now = func() time.Time { return time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC) }
			user := createTestUser(t, s, "barista", "espresso123")

			w := httptest.NewRecorder()
			h.UpdateProfile(w, newRequest(t, http.MethodPost, "/user_profile", tt.req,
				testClaims(user.ID, user.Username, models.TokenTypeAccess)))

			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode != http.StatusOK {
				var errResp api.ErrorResponse
				decodeBody(t, w, &errResp)
				assert.Equal(t, tt.wantMessage, errResp.Message)
				return
			}

			var resp api.MessageResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantMessage, resp.Message)

			stored, err := s.GetUserByID(context.Background(), user.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantGender, stored.Gender)
			assert.Equal(t, tt.req.Phone, stored.Phone)
			assert.Equal(t, tt.wantBirth, stored.Profile().Birthday)
		})
	}
}

func TestProfileHandler_UpdateProfile_StorageError(t *testing.T) {
	h := NewProfileHandler(setupTestLogger(), &failingUserStorage{err: errors.New("db down")})

	w := httptest.NewRecorder()
	h.UpdateProfile(w, newRequest(t, http.MethodPost, "/user_profile",
		api.ProfileUpdateRequest{Gender: "male"}, testClaims(1, "barista", models.TokenTypeAccess)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
