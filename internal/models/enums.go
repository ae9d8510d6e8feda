package models

import "fmt"

// Gender is the closed set of profile genders.
type Gender string

const (
	GenderNone   Gender = "none"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MenuType separates user-customized drinks from shared general ones.
type MenuType string

const (
	MenuTypeCustomized MenuType = "customized"
	MenuTypeGeneral    MenuType = "general"
)

// TasteLevel is the strength of the brew.
type TasteLevel string

const (
	TasteMild     TasteLevel = "mild"
	TasteStandard TasteLevel = "standard"
	TasteStrong   TasteLevel = "strong"
)

// WaterLevel is the amount of water per cup.
type WaterLevel string

const (
	WaterLong     WaterLevel = "long"
	WaterStandard WaterLevel = "standard"
	WaterSmall    WaterLevel = "small"
)

// FoamLevel is the amount of milk foam.
type FoamLevel string

const (
	FoamNone     FoamLevel = "none"
	FoamStandard FoamLevel = "standard"
	FoamThick    FoamLevel = "thick"
)

// GrindSize is the coffee particle size.
type GrindSize string

const (
	GrindFine   GrindSize = "fine"
	GrindMedium GrindSize = "medium"
	GrindCoarse GrindSize = "coarse"
)

// CoffeeOption selects the bean hopper on the machine.
type CoffeeOption string

const (
	CoffeeOne CoffeeOption = "coffee_one"
	CoffeeTwo CoffeeOption = "coffee_two"
)

// Значения перечислений в порядке объявления, используются в сообщениях об ошибках
var (
	Genders       = []Gender{GenderNone, GenderMale, GenderFemale}
	MenuTypes     = []MenuType{MenuTypeCustomized, MenuTypeGeneral}
	TasteLevels   = []TasteLevel{TasteMild, TasteStandard, TasteStrong}
	WaterLevels   = []WaterLevel{WaterLong, WaterStandard, WaterSmall}
	FoamLevels    = []FoamLevel{FoamNone, FoamStandard, FoamThick}
	GrindSizes    = []GrindSize{GrindFine, GrindMedium, GrindCoarse}
	CoffeeOptions = []CoffeeOption{CoffeeOne, CoffeeTwo}
)

// EnumError reports a value outside of a closed enumeration.
type EnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("%s: %q is not one of %v", e.Field, e.Value, e.Allowed)
}

func parseEnum[T ~string](field, value string, allowed []T) (T, error) {
	for _, a := range allowed {
		if string(a) == value {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", &EnumError{Field: field, Value: value, Allowed: names}
}

// ParseGender validates a gender value.
func ParseGender(v string) (Gender, error) { return parseEnum("gender", v, Genders) }

// ParseMenuType validates a menu type value.
func ParseMenuType(v string) (MenuType, error) { return parseEnum("menu_type", v, MenuTypes) }

// ParseTasteLevel validates a taste level value.
func ParseTasteLevel(v string) (TasteLevel, error) { return parseEnum("taste_level", v, TasteLevels) }

// ParseWaterLevel validates a water level value.
func ParseWaterLevel(v string) (WaterLevel, error) { return parseEnum("water_level", v, WaterLevels) }

// ParseFoamLevel validates a foam level value.
func ParseFoamLevel(v string) (FoamLevel, error) { return parseEnum("foam_level", v, FoamLevels) }

// ParseGrindSize validates a grind size value.
func ParseGrindSize(v string) (GrindSize, error) { return parseEnum("grind_size", v, GrindSizes) }

// ParseCoffeeOption validates a coffee option value.
func ParseCoffeeOption(v string) (CoffeeOption, error) {
	return parseEnum("coffee_option", v, CoffeeOptions)
}
