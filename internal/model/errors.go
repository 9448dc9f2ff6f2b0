package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username is already taken")

	// Purchase errors
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("item is already owned")
	ErrUnknownItem       = errors.New("item is not in the catalog")

	// Placement errors
	ErrNotOwned         = errors.New("item not owned")
	ErrQuotaExceeded    = errors.New("all owned units are already placed")
	ErrFixtureLocked    = errors.New("fixture pieces cannot be modified")
	ErrInstanceNotFound = errors.New("placed instance not found")
)
