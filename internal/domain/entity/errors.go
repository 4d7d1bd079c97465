package entity

import "errors"

var (
	// Board errors
	ErrBoardNotFound      = errors.New("board not found")
	ErrBoardAlreadyExists = errors.New("board already exists")
	ErrEmptyBoardName     = errors.New("board name cannot be empty")

	// List errors
	ErrListNotFound      = errors.New("list not found")
	ErrListAlreadyExists = errors.New("list already exists")
	ErrEmptyListName     = errors.New("list name cannot be empty")
	ErrInvalidListOrder  = errors.New("list order does not match board lists")

	// Card errors
	ErrCardNotFound  = errors.New("card not found")
	ErrEmptyCardName = errors.New("card title cannot be empty")
	ErrInvalidCardID = errors.New("invalid card ID")

	// Validation errors
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrInvalidPosition = errors.New("position must be a finite number")
	ErrRequiredField   = errors.New("required field is missing")
)

// IsValidation reports whether err is a caller mistake rather than a
// lookup or storage failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyBoardName) ||
		errors.Is(err, ErrEmptyListName) ||
		errors.Is(err, ErrEmptyCardName) ||
		errors.Is(err, ErrInvalidCardID) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrInvalidPosition) ||
		errors.Is(err, ErrInvalidListOrder) ||
		errors.Is(err, ErrRequiredField)
}

// IsNotFound reports whether err names a missing board, list or card.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBoardNotFound) ||
		errors.Is(err, ErrListNotFound) ||
		errors.Is(err, ErrCardNotFound)
}

// IsConflict reports whether err names a duplicate board or list.
func IsConflict(err error) bool {
	return errors.Is(err, ErrBoardAlreadyExists) ||
		errors.Is(err, ErrListAlreadyExists)
}
