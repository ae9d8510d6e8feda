package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		errMsg   string
	}{
		{name: "lowercase", username: "barista"},
		{name: "mixed case with digits", username: "Barista42"},
		{name: "underscore", username: "night_shift"},
		{name: "only digits", username: "100500"},
		{name: "max length", username: strings.Repeat("b", MaxUsernameLen)},
		{name: "empty", username: "", errMsg: "username cannot be empty"},
		{name: "too short", username: "ab", errMsg: "must be at least 3 characters long"},
		{name: "too long", username: strings.Repeat("b", MaxUsernameLen+1), errMsg: "must not exceed 32 characters"},
		{name: "dot", username: "flat.white", errMsg: "can only contain letters"},
		{name: "space", username: "flat white", errMsg: "can only contain letters"},
		{name: "email", username: "bob@cafe", errMsg: "can only contain letters"},
		{name: "cyrillic", username: "бариста", errMsg: "can only contain letters"},
		{name: "reserved", username: "Admin", errMsg: `username "Admin" is reserved`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		errMsg   string
	}{
		{name: "exactly min length", password: "espresso"},
		{name: "special chars", password: "P@ssw0rd!@#$"},
		{name: "max length", password: strings.Repeat("a", MaxPasswordLen)},
		{name: "empty", password: "", errMsg: "password cannot be empty"},
		{name: "too short", password: "latte12", errMsg: "must be at least 8 characters long"},
		{name: "too long", password: strings.Repeat("a", MaxPasswordLen+1), errMsg: "must not exceed 128 characters"},
		// 8 символов кириллицы занимают 16 байт, но это 8 символов
		{name: "multibyte counted in runes", password: "капучино"},
		{name: "multibyte too short", password: "латте", errMsg: "must be at least 8 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
