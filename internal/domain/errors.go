package domain

import (
	"errors"
	"strconv"
)

// Sentinel errors for album operations
var (
	// ErrAlbumIDRequired indicates an album request was made without an ID
	ErrAlbumIDRequired = errors.New("album id is required")

	// ErrAlbumNotFound indicates no album in the list matched the query
	ErrAlbumNotFound = errors.New("album not found")
)

// unknownErrorText is shown when a failure fits neither error kind
const unknownErrorText = "Unknown error!"

// ErrorKind classifies a failed fetch
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindEnvironment means the request never completed
	KindEnvironment
	// KindApplication means the server answered with a failure status
	KindApplication
)

func (k ErrorKind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindApplication:
		return "application"
	default:
		return "unknown"
	}
}

// EnvironmentError is a failure of the local side: the request could not be
// sent or no response was received.
type EnvironmentError struct {
	Err error
}

func (e *EnvironmentError) Error() string {
	if e.Err == nil {
		return "request failed"
	}
	return e.Err.Error()
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// ApplicationError is a response from the server with a failure status
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	return "status " + strconv.Itoa(e.Status) + ": " + e.Message
}

// FetchError is the normalized failure handed to subscribers.
// Error returns Text unchanged.
type FetchError struct {
	Kind ErrorKind
	Text string
	Err  error
}

func (e *FetchError) Error() string {
	return e.Text
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NormalizeError collapses a fetch failure into the single user-facing message
func NormalizeError(err error) string {
	_, text := classify(err)
	return text
}

// NewFetchError classifies err and wraps it with its normalized message
func NewFetchError(err error) *FetchError {
	kind, text := classify(err)
	return &FetchError{Kind: kind, Text: text, Err: err}
}

func classify(err error) (ErrorKind, string) {
	var envErr *EnvironmentError
	if errors.As(err, &envErr) {
		return KindEnvironment, "Error: " + envErr.Error()
	}

	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return KindApplication, "Error Code: " + strconv.Itoa(appErr.Status) + "\nMessage: " + appErr.Message
	}

	return KindUnknown, unknownErrorText
}
