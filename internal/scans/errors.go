package scans

import "errors"

var (
	ErrNotFound     = errors.New("scan not found")
	ErrInvalidInput = errors.New("invalid input")
)
