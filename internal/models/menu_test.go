package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawMenu() RawMenuConfig {
	return RawMenuConfig{
		Name:       "Morning",
		MenuType:   "customized",
		TasteLevel: "strong",
		WaterLevel: "small",
		FoamLevel:  "none",
		GrindSize:  "fine",
	}
}

func TestRawMenuConfig_Parse(t *testing.T) {
	cfg, err := validRawMenu().Parse()
	require.NoError(t, err)

	assert.Equal(t, "Morning", cfg.Name)
	assert.Equal(t, MenuTypeCustomized, cfg.MenuType)
	assert.Equal(t, TasteStrong, cfg.TasteLevel)
	assert.Equal(t, WaterSmall, cfg.WaterLevel)
	assert.Equal(t, FoamNone, cfg.FoamLevel)
	assert.Equal(t, GrindFine, cfg.GrindSize)
	assert.Empty(t, cfg.CoffeeOption)
}

func TestRawMenuConfig_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *RawMenuConfig)
		wantField string
	}{
		{name: "menu type", mutate: func(r *RawMenuConfig) { r.MenuType = "special" }, wantField: "menu_type"},
		{name: "taste", mutate: func(r *RawMenuConfig) { r.TasteLevel = "bitter" }, wantField: "taste_level"},
		{name: "water", mutate: func(r *RawMenuConfig) { r.WaterLevel = "" }, wantField: "water_level"},
		{name: "foam", mutate: func(r *RawMenuConfig) { r.FoamLevel = "THICK" }, wantField: "foam_level"},
		{name: "grind", mutate: func(r *RawMenuConfig) { r.GrindSize = "powder" }, wantField: "grind_size"},
		{name: "coffee option", mutate: func(r *RawMenuConfig) { r.CoffeeOption = "coffee_three" }, wantField: "coffee_option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRawMenu()
			tt.mutate(&raw)

			_, err := raw.Parse()
			require.Error(t, err)

			var enumErr *EnumError
			require.ErrorAs(t, err, &enumErr)
			assert.Equal(t, tt.wantField, enumErr.Field)
		})
	}
}

func TestRawMenuConfig_Parse_BlankName(t *testing.T) {
	raw := validRawMenu()
	raw.Name = "   "

	_, err := raw.Parse()
	assert.ErrorIs(t, err, ErrMenuNameRequired)
}

func TestRawMenuConfig_Parse_CoffeeOption(t *testing.T) {
	raw := validRawMenu()
	raw.CoffeeOption = "coffee_two"

	cfg, err := raw.Parse()
	require.NoError(t, err)
	assert.Equal(t, CoffeeTwo, cfg.CoffeeOption)
}

func TestMenu_UsableBy(t *testing.T) {
	own := &Menu{OwnerID: 1, MenuConfig: MenuConfig{MenuType: MenuTypeCustomized}}
	general := &Menu{OwnerID: 1, MenuConfig: MenuConfig{MenuType: MenuTypeGeneral}}

	assert.True(t, own.UsableBy(1))
	assert.False(t, own.UsableBy(2))
	assert.True(t, general.UsableBy(2))
}

func TestParseGender(t *testing.T) {
	g, err := ParseGender("female")
	require.NoError(t, err)
	assert.Equal(t, GenderFemale, g)

	_, err = ParseGender("unknown")
	assert.ErrorContains(t, err, "gender")
}
