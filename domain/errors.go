package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrBusinessRule is matched by every BusinessRuleError
	ErrBusinessRule = errors.New("business rule violated")
	// ErrForbidden is matched by BusinessRuleError created with Forbidden
	ErrForbidden = errors.New("forbidden")
	// ErrTransient marks storage failures the caller may retry
	ErrTransient = errors.New("transient failure, please retry")
	// ErrVersionConflict is returned by versioned writes when the listing changed after it was loaded
	ErrVersionConflict = errors.New("version conflict")
)

// NotFoundError names the missing resource and its key
type NotFoundError struct {
	Resource string
	Key      interface{}
}

func NewNotFound(resource string, key interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s (%v) was not found.", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError is a uniqueness violation
type ConflictError struct {
	Entity string
	Key    interface{}
}

func NewConflict(entity string, key interface{}) *ConflictError {
	return &ConflictError{Entity: entity, Key: key}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%v) already exists.", e.Entity, e.Key)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// BusinessRuleError carries a human readable precondition failure
type BusinessRuleError struct {
	Message   string
	Forbidden bool
}

func NewBusinessRule(format string, args ...interface{}) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(message string) *BusinessRuleError {
	return &BusinessRuleError{Message: message, Forbidden: true}
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func (e *BusinessRuleError) Is(target error) bool {
	return target == ErrBusinessRule || (e.Forbidden && target == ErrForbidden)
}
