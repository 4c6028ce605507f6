package errs

import (
	"errors"
	"fmt"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

// ValidationError covers blank required fields, non-positive amounts and
// dangling account/category references. Raised before any write.
type ValidationError struct {
	ErrorMessage
}

// Transfer precondition failures, each with its own user-facing message.
type MissingFieldError struct {
	ErrorMessage
}

type SameAccountError struct {
	ErrorMessage
}

type InvalidAmountError struct {
	ErrorMessage
}

// PlanPaidOffError rejects a payment log on an installment plan with no
// installments left.
type PlanPaidOffError struct {
	ErrorMessage
	PlanID string
}

// DatabaseError wraps a rejected read or write from the data service.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ConfigurationError is fatal: the process must not start without the
// data service settings.
type ConfigurationError struct {
	ErrorMessage
	Missing []string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewMissingFieldError(message string) *MissingFieldError {
	return &MissingFieldError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewSameAccountError() *SameAccountError {
	return &SameAccountError{
		ErrorMessage: ErrorMessage{Message: "source and destination accounts must differ"},
	}
}

func NewInvalidAmountError() *InvalidAmountError {
	return &InvalidAmountError{
		ErrorMessage: ErrorMessage{Message: "amount must be greater than 0"},
	}
}

func NewPlanPaidOffError(planID string) *PlanPaidOffError {
	return &PlanPaidOffError{
		ErrorMessage: ErrorMessage{Message: "installment plan is already paid off"},
		PlanID:       planID,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewConfigurationError(message string, missing ...string) *ConfigurationError {
	return &ConfigurationError{
		ErrorMessage: ErrorMessage{Message: message},
		Missing:      missing,
	}
}

// IsValidation reports whether err is any of the pre-write validation failures.
func IsValidation(err error) bool {
	var (
		ve *ValidationError
		mf *MissingFieldError
		sa *SameAccountError
		ia *InvalidAmountError
	)
	return errors.As(err, &ve) || errors.As(err, &mf) || errors.As(err, &sa) || errors.As(err, &ia)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsClientError reports whether err is caused by the request rather than the
// data service. Such errors pass through the store layer unwrapped.
func IsClientError(err error) bool {
	var (
		ae *AlreadyExistsError
		po *PlanPaidOffError
	)
	return IsValidation(err) || IsNotFound(err) || errors.As(err, &ae) || errors.As(err, &po)
}
