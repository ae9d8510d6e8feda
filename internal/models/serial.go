package models

import "time"

// SerialLink привязывает физический серийный номер к строке заказа
type SerialLink struct {
	CreatedAt    time.Time `json:"created_at"`
	SerialNumber string    `json:"serial_number"`
	ID           int64     `json:"id"`
	OrderID      int64     `json:"order_id"`
	MenuID       int64     `json:"menu_id"`
}

// SerialLookup is the result of resolving a serial number.
type SerialLookup struct {
	CustomizedMessage string `json:"customized_message"`
	OrderID           int64  `json:"order_id"`
	MenuID            int64  `json:"menu_id"`
}
