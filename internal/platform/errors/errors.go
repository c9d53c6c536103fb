package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrEmptyCatalog   = errors.New("clip catalog is empty")
	ErrBreakActive    = errors.New("break already active")
	ErrNoActiveBreak  = errors.New("no active break")
	ErrPromptNotShown = errors.New("feedback prompt not shown yet")
	ErrUnavailable    = errors.New("capability unavailable")
)
