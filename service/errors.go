package service

import (
	"errors"
)

// Error kinds. Every DomainError unwraps to one of these.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyJoined = errors.New("already joined")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConflict      = errors.New("conflict")
	ErrUnauthorized  = errors.New("unauthorized")
)

// Store errors returned by repositories on unique constraint violations
var (
	ErrDuplicatePoolCode    = errors.New("pool code already in use")
	ErrDuplicateParticipant = errors.New("participant already exists")
)

// DomainError is an expected failure with a message safe to show to the caller
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// NewInvalidInputError returns an InvalidInput error with the given message
func NewInvalidInputError(message string) *DomainError {
	return &DomainError{Kind: ErrInvalidInput, Message: message}
}

var (
	ErrPoolNotFound        = &DomainError{Kind: ErrNotFound, Message: "Pool not found."}
	ErrAlreadyParticipant  = &DomainError{Kind: ErrAlreadyJoined, Message: "You already joined this pool."}
	ErrGameNotFound        = &DomainError{Kind: ErrNotFound, Message: "Game not found."}
	ErrUserNotFound        = &DomainError{Kind: ErrNotFound, Message: "User not found."}
	ErrParticipantNotFound = &DomainError{Kind: ErrNotFound, Message: "Participant not found."}
	ErrNotParticipant      = &DomainError{Kind: ErrNotFound, Message: "You're not allowed to create a guess inside this pool."}
	ErrGuessingClosed      = &DomainError{Kind: ErrInvalidInput, Message: "You cannot send guesses after the game date."}
	ErrPoolCodeRequired    = &DomainError{Kind: ErrInvalidInput, Message: "Pool code is required."}
	ErrPoolTitleRequired   = &DomainError{Kind: ErrInvalidInput, Message: "Pool title is required."}
	ErrScoresRequired      = &DomainError{Kind: ErrInvalidInput, Message: "Both team scores are required."}
	ErrNegativeScore       = &DomainError{Kind: ErrInvalidInput, Message: "Scores cannot be negative."}
	ErrPoolCodeExhausted   = &DomainError{Kind: ErrConflict, Message: "Could not generate a unique pool code, please try again."}
)
