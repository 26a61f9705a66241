package apperr

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Kind classifies failures so callers can branch on error class instead of
// matching message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidationRejected
	KindTransientUpstream
	KindPermanentUpstream
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
	// Status carries the upstream HTTP status for upstream kinds so the
	// handler layer can propagate it.
	Status int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func NotFound(msg string) *Error {
	return New(KindNotFound, msg)
}

func Forbidden(msg string) *Error {
	return New(KindForbidden, msg)
}

func Conflict(msg string) *Error {
	return New(KindConflict, msg)
}

func ValidationRejected(msg string) *Error {
	return New(KindValidationRejected, msg)
}

// KindOf reports the classification of err, walking the wrap chain.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Postgres error codes worth distinguishing at the repository boundary.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// FromPG maps driver errors onto the taxonomy. Unique violations become
// Conflict; anything else passes through untouched.
func FromPG(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return Wrap(KindConflict, conflictMsg, err)
	}
	return err
}

// IsContention reports whether err is a retryable datastore failure
// (serialization conflict or deadlock).
func IsContention(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgSerializationFailure || code == pgDeadlockDetected
	}
	return false
}
