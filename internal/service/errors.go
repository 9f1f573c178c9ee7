package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinels shared across services. Typed errors below unwrap to them so
// callers can match with errors.Is.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthenticated    = errors.New("no authenticated user")
	ErrAlreadyJoined      = errors.New("already joined this challenge")
	ErrStorageUnavailable = errors.New("file storage is not configured")
)

// ValidationError reports a rejected input. It is returned before any store
// call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError means the referenced record does not exist or is not
// visible to the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func notFound(resource string, id primitive.ObjectID) error {
	return &NotFoundError{Resource: resource, ID: id.Hex()}
}

// ConflictError is returned when a plan changed between the read and the
// write of an edit. The caller may re-read and try again.
type ConflictError struct {
	PlanID primitive.ObjectID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("workout plan %s was modified concurrently", e.PlanID.Hex())
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// PersistenceError wraps a store failure. Its message is the store's
// message, unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }
