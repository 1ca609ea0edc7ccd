package models

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrDuplicateCode   = errors.New("voucher code must be unique")
	ErrMirrorFailed    = errors.New("user approval flag could not be mirrored")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedFile = errors.New("unsupported file type")
)
