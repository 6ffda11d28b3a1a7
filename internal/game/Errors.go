package game

import "errors"

var (
	// ErrOutOfRange is returned for coordinates outside the grid.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidValue is returned when writing a cell kind outside the enumeration.
	ErrInvalidValue = errors.New("invalid cell value")
	// ErrDataAccess covers every parse or I/O failure while loading or saving.
	ErrDataAccess = errors.New("data access error")
)
