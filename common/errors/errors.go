package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrChainNotFound      = errors.New("chain not found")
	ErrInvalidChainID     = errors.New("invalid chain id")
	ErrDatabaseConnect    = errors.New("failed to connect to database")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrChainExists        = errors.New("chain already exists in registry")
	ErrFactoryNotProvided = errors.New("chain factory not provided")
	ErrInvalidChainType   = errors.New("invalid chain type")
	ErrNotImplemented     = errors.New("functionality not implemented")
	ErrNoSession          = errors.New("wallet not connected")
	ErrNoAccounts         = errors.New("wallet returned no accounts")
	ErrNoEstimate         = errors.New("no fee estimate, request a quote first")
	ErrSendInProgress     = errors.New("a send is already in progress")
	ErrSameChain          = errors.New("can't send between the same chains")
	ErrProviderNotFound   = errors.New("wallet provider not found")
)

// ValidationError reports a missing or invalid form field. No external call
// has been made when it is returned.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// WrapValidation creates a ValidationError whose reason is taken from a sentinel error.
func WrapValidation(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: err.Error(), Err: err}
}

// StaleEstimateError is returned by a send when the form no longer matches the
// cached fee estimate. The estimate has been discarded and a new quote is required.
type StaleEstimateError struct {
	Field string
}

func (e *StaleEstimateError) Error() string {
	return fmt.Sprintf("fee estimate is stale (%s changed), request a new quote", e.Field)
}

// ConnectionError wraps a failure to connect a wallet or read its accounts.
type ConnectionError struct {
	Provider string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("failed to connect wallet: %v", e.Err)
	}
	return fmt.Sprintf("failed to connect wallet %s: %v", e.Provider, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TransferExecutionError wraps a failed quote or send call. Error returns the
// underlying message unchanged so it can be shown to the user as is. TxHash is
// set when the send transaction was broadcast before the failure.
type TransferExecutionError struct {
	Op     string
	Err    error
	TxHash string
}

func (e *TransferExecutionError) Error() string {
	return e.Err.Error()
}

func (e *TransferExecutionError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsStaleEstimate reports whether err is, or wraps, a StaleEstimateError.
func IsStaleEstimate(err error) bool {
	var target *StaleEstimateError
	return errors.As(err, &target)
}

// IsConnection reports whether err is, or wraps, a ConnectionError.
func IsConnection(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// IsTransferExecution reports whether err is, or wraps, a TransferExecutionError.
func IsTransferExecution(err error) bool {
	var target *TransferExecutionError
	return errors.As(err, &target)
}
