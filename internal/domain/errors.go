package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrInvalidRecipe     = errors.New("invalid recipe")
	ErrBookFull          = errors.New("recipe book is full")
	ErrDuplicateRecipe   = errors.New("recipe already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidPayment    = errors.New("invalid payment")
)
