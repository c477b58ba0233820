package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrSoftFailure is returned when the backend replied with a well formed
	// response that lacks a semantically required field (e.g. a generated PDF
	// reply without a download reference).
	ErrSoftFailure = errors.New("soft failure")
)
