package vectordb

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error. Every error leaving an adapter or the facade has
// exactly one kind.
type Kind uint8

const (
	// KindProvider: the backend failed (unreachable, auth rejected, internal error).
	KindProvider Kind = iota + 1
	// KindConfiguration: the client could not be constructed (missing
	// credentials, unknown provider, bad path).
	KindConfiguration
	// KindVectorOperation: the backend rejected a data operation
	// (dimension mismatch, malformed request).
	KindVectorOperation
	// KindValidation: the input was rejected locally before any backend call.
	KindValidation
)

// Taxonomy sentinels. Every *Error matches ErrBeVec and the sentinel of its kind.
var (
	ErrBeVec           = errors.New("bevec error")
	ErrProvider        = errors.New("provider error")
	ErrConfiguration   = errors.New("configuration error")
	ErrVectorOperation = errors.New("vector operation error")
	ErrValidation      = errors.New("validation error")

	// ErrCollectionNotFound is carried as the cause of errors about missing collections.
	ErrCollectionNotFound = errors.New("collection not found")
)

func (k Kind) String() string {
	switch k {
	case KindProvider:
		return "provider error"
	case KindConfiguration:
		return "configuration error"
	case KindVectorOperation:
		return "vector operation error"
	case KindValidation:
		return "validation error"
	}
	return "bevec error"
}

func (k Kind) sentinel() error {
	switch k {
	case KindProvider:
		return ErrProvider
	case KindConfiguration:
		return ErrConfiguration
	case KindVectorOperation:
		return ErrVectorOperation
	case KindValidation:
		return ErrValidation
	}
	return nil
}

// Error is the single error type of the library.
type Error struct {
	Kind Kind
	// Op is the operation that failed, e.g. "upsert" or "init".
	Op string
	// Provider is the registry name of the backend, empty for facade-level errors.
	Provider string
	Message  string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Provider != "" {
		b.WriteString(" [")
		b.WriteString(e.Provider)
		b.WriteString("]")
	}
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBeVec) and errors.Is(err, ErrValidation) (etc.) work.
func (e *Error) Is(target error) bool {
	if target == ErrBeVec {
		return true
	}
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// WithProvider sets Provider if it is still empty and returns e.
func (e *Error) WithProvider(provider string) *Error {
	if e.Provider == "" {
		e.Provider = provider
	}
	return e
}

func newError(kind Kind, op, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Op: op, Message: msg}
}

// ValidationErrorf builds a KindValidation error.
func ValidationErrorf(op, format string, args ...any) *Error {
	return newError(KindValidation, op, format, args...)
}

// ConfigurationErrorf builds a KindConfiguration error.
func ConfigurationErrorf(op, format string, args ...any) *Error {
	return newError(KindConfiguration, op, format, args...)
}

// ProviderErrorf builds a KindProvider error.
func ProviderErrorf(op, format string, args ...any) *Error {
	return newError(KindProvider, op, format, args...)
}

// VectorOperationErrorf builds a KindVectorOperation error.
func VectorOperationErrorf(op, format string, args ...any) *Error {
	return newError(KindVectorOperation, op, format, args...)
}

// Wrap attaches err as the cause of a new error of the given kind.
// An err that already is an *Error is returned untouched so its kind survives.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// EnsureTaxonomy guarantees err belongs to the taxonomy. Foreign errors are
// wrapped with fallback as their kind; taxonomy errors only get the provider
// name filled in. A nil err stays nil.
func EnsureTaxonomy(err error, provider, op string, fallback Kind) error {
	if err == nil {
		return nil
	}
	return Wrap(fallback, op, err).WithProvider(provider)
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf returns the kind of err, or 0 when err is not part of the taxonomy.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return 0
}

// IsBeVecError checks if the error belongs to the taxonomy.
func IsBeVecError(err error) bool {
	return errors.Is(err, ErrBeVec)
}

// IsProviderError checks if the error is a backend failure.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrProvider)
}

// IsConfigurationError checks if the error is a construction failure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsVectorOperationError checks if the backend rejected a data operation.
func IsVectorOperationError(err error) bool {
	return errors.Is(err, ErrVectorOperation)
}

// IsValidationError checks if the input was rejected locally.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsCollectionNotFound checks if the error is about a missing collection.
func IsCollectionNotFound(err error) bool {
	return errors.Is(err, ErrCollectionNotFound)
}
