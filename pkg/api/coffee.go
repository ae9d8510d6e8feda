package api

import "time"

// MenuRequest представляет тело POST и PATCH /menu
// MenuID обязателен только для PATCH
type MenuRequest struct {
	Name         string `json:"name"`
	MenuType     string `json:"menu_type"`
	TasteLevel   string `json:"taste_level"`
	WaterLevel   string `json:"water_level"`
	FoamLevel    string `json:"foam_level"`
	GrindSize    string `json:"grind_size"`
	CoffeeOption string `json:"coffee_option,omitempty"`
	MenuID       int64  `json:"menu_id,omitempty"`
}

// MenuResponse представляет сохраненный профиль напитка
type MenuResponse struct {
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	MenuType     string    `json:"menu_type"`
	TasteLevel   string    `json:"taste_level"`
	WaterLevel   string    `json:"water_level"`
	FoamLevel    string    `json:"foam_level"`
	GrindSize    string    `json:"grind_size"`
	CoffeeOption string    `json:"coffee_option,omitempty"`
	MenuID       int64     `json:"menu_id"`
}

// MenuCreatedResponse представляет ответ на создание профиля
type MenuCreatedResponse struct {
	Message string `json:"message"`
	MenuID  int64  `json:"menu_id"`
}

// OrderLine представляет строку заказа
type OrderLine struct {
	MenuID int64 `json:"menu_id"`
	Counts int   `json:"counts"`
}

// OrderRequest представляет тело POST /order
type OrderRequest struct {
	Message string      `json:"message"`
	Order   []OrderLine `json:"order"`
}

// OrderResponse представляет заказ со строками
type OrderResponse struct {
	CreatedAt     time.Time   `json:"created_at"`
	Message       string      `json:"message"`
	OrderContents []OrderLine `json:"order_contents"`
	OrderID       int64       `json:"order_id"`
	IsObsolete    bool        `json:"is_obsolete"`
}

// OrderCreatedResponse представляет ответ на создание заказа
type OrderCreatedResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// SerialLinkRequest представляет тело POST /serial_number
type SerialLinkRequest struct {
	SerialNumber string `json:"serial_number"`
	OrderID      int64  `json:"order_id"`
	MenuID       int64  `json:"menu_id"`
}

// SerialLinkResponse представляет одну привязку серийного номера к заказу
type SerialLinkResponse struct {
	SerialNumber string `json:"serial_number"`
	MenuID       int64  `json:"menu_id"`
}

// SerialLookupResponse представляет результат поиска по серийному номеру
type SerialLookupResponse struct {
	CustomizedMessage string `json:"customized_message"`
	OrderID           int64  `json:"order_id"`
	MenuID            int64  `json:"menu_id"`
}
