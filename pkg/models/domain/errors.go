package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrEmptyResult       = errors.New("no data available, please check your parameters")
	ErrNoListings        = errors.New("no listingMapIds found")
)

// MissingCredentialError names the secrets that were not supplied.
type MissingCredentialError struct {
	Names []string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("please provide %s", strings.Join(e.Names, " and "))
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// UpstreamError is a failed call to the booking API. StatusCode is zero when no
// response was received (timeout, connection error).
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to fetch data from %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("failed to fetch data from %s: %d %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError lists required columns absent from a table.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("missing required columns for validation: %s", strings.Join(e.Missing, ", "))
}

// AgentError wraps a failure of the question-answering agent.
type AgentError struct {
	Err error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("an error occurred: %v", e.Err)
}

func (e *AgentError) Unwrap() error {
	return e.Err
}
