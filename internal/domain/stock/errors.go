package stock

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrAlreadyRegistered = errors.New("equipment already registered")
	// ErrStockInUse refuses catalog removal while the ledger still holds
	// delivery history for the equipment.
	ErrStockInUse = errors.New("stock record has delivery history")
)
