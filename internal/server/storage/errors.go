package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrMenuNotFound indicates that menu does not exist or is not visible to the caller
	ErrMenuNotFound = errors.New("menu not found")

	// ErrOrderNotFound indicates that order was not found
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderLineNotFound indicates that the order does not contain the menu
	ErrOrderLineNotFound = errors.New("menu is not part of the order")

	// ErrSerialAlreadyLinked indicates a duplicate (order, menu, serial number) link
	ErrSerialAlreadyLinked = errors.New("serial number already linked")

	// ErrSerialNotFound indicates that serial number has no links
	ErrSerialNotFound = errors.New("serial number not found")
)
