package models

import (
	"errors"
	"strings"
	"time"
)

// MenuConfig is the drink configuration shared by create and update.
type MenuConfig struct {
	Name         string       `json:"name"`
	MenuType     MenuType     `json:"menu_type"`
	TasteLevel   TasteLevel   `json:"taste_level"`
	WaterLevel   WaterLevel   `json:"water_level"`
	FoamLevel    FoamLevel    `json:"foam_level"`
	GrindSize    GrindSize    `json:"grind_size"`
	CoffeeOption CoffeeOption `json:"coffee_option,omitempty"` // пустая строка = не задано
}

// Menu представляет сохраненный профиль напитка пользователя
type Menu struct {
	CreatedAt time.Time `json:"created_at"`
	MenuConfig
	ID      int64 `json:"menu_id"`
	OwnerID int64 `json:"owner_id"`
}

// UsableBy reports whether the user may reference the menu in an order.
// General menus are shared; customized menus belong to their owner only.
func (m *Menu) UsableBy(userID int64) bool {
	return m.OwnerID == userID || m.MenuType == MenuTypeGeneral
}

// RawMenuConfig holds unvalidated menu fields as they arrive over the wire.
type RawMenuConfig struct {
	Name         string
	MenuType     string
	TasteLevel   string
	WaterLevel   string
	FoamLevel    string
	GrindSize    string
	CoffeeOption string
}

// ErrMenuNameRequired is returned when a menu has a blank name.
var ErrMenuNameRequired = errors.New("name is required")

// Parse validates every field and builds a MenuConfig.
// The first invalid field is reported.
func (r RawMenuConfig) Parse() (MenuConfig, error) {
	var (
		cfg MenuConfig
		err error
	)

	cfg.Name = strings.TrimSpace(r.Name)
	if cfg.Name == "" {
		return MenuConfig{}, ErrMenuNameRequired
	}
	if cfg.MenuType, err = ParseMenuType(r.MenuType); err != nil {
		return MenuConfig{}, err
	}
	if cfg.TasteLevel, err = ParseTasteLevel(r.TasteLevel); err != nil {
		return MenuConfig{}, err
	}
	if cfg.WaterLevel, err = ParseWaterLevel(r.WaterLevel); err != nil {
		return MenuConfig{}, err
	}
	if cfg.FoamLevel, err = ParseFoamLevel(r.FoamLevel); err != nil {
		return MenuConfig{}, err
	}
	if cfg.GrindSize, err = ParseGrindSize(r.GrindSize); err != nil {
		return MenuConfig{}, err
	}
	if r.CoffeeOption != "" {
		if cfg.CoffeeOption, err = ParseCoffeeOption(r.CoffeeOption); err != nil {
			return MenuConfig{}, err
		}
	}

	return cfg, nil
}
