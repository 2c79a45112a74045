package errors

import (
	"errors"
	"fmt"
)

type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func NewResourceNotFoundError(resource, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: resource, ID: id}
}

func NewTaskNotFoundError(id string) *ResourceNotFoundError {
	return NewResourceNotFoundError("task", id)
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

type InvalidStateError struct {
	ID    string
	State string
}

func NewInvalidStateError(id, state string) *InvalidStateError {
	return &InvalidStateError{ID: id, State: state}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("task %q is already %s", e.ID, e.State)
}

func IsInvalidStateError(err error) bool {
	var e *InvalidStateError
	return errors.As(err, &e)
}

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

type UnknownWorkKindError struct {
	Kind string
}

func NewUnknownWorkKindError(kind string) *UnknownWorkKindError {
	return &UnknownWorkKindError{Kind: kind}
}

func (e *UnknownWorkKindError) Error() string {
	return fmt.Sprintf("unknown work kind %q", e.Kind)
}

func IsUnknownWorkKindError(err error) bool {
	var e *UnknownWorkKindError
	return errors.As(err, &e)
}

// ManagerUnavailableError is returned when the task manager is not running.
type ManagerUnavailableError struct {
	err error
}

func NewManagerUnavailableError(err error) *ManagerUnavailableError {
	return &ManagerUnavailableError{err: err}
}

func (e *ManagerUnavailableError) Error() string {
	return fmt.Sprintf("task manager unavailable: %v", e.err)
}

func (e *ManagerUnavailableError) Unwrap() error {
	return e.err
}

func IsManagerUnavailableError(err error) bool {
	var e *ManagerUnavailableError
	return errors.As(err, &e)
}
