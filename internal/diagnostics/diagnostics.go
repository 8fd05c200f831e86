package diagnostics

import "fmt"

// ErrorCode identifies a diagnostic class. Codes are grouped by
// component: R = resolution, S = scope, P = printer, L = loader.
type ErrorCode string

const (
	// Resolution
	ErrR001 ErrorCode = "R001" // path not valid
	ErrR002 ErrorCode = "R002" // constructor not found

	// Scope
	ErrS001 ErrorCode = "S001" // variable not visible
	ErrS002 ErrorCode = "S002" // type variable not visible

	// Printer
	ErrP001 ErrorCode = "P001" // unsupported operator
	ErrP002 ErrorCode = "P002" // unsupported construct
	ErrP003 ErrorCode = "P003" // statement-only node in expression position

	// Loader
	ErrL001 ErrorCode = "L001" // malformed dump
	ErrL002 ErrorCode = "L002" // unknown node kind
)

func (c ErrorCode) String() string { return string(c) }

// DiagnosticError is the single error type of the core. Precondition
// violations and unsupported constructs panic with one (they are
// programmer errors by contract); the loader and CLI return them.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: message}
}

func NewErrorf(code ErrorCode, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: fmt.Sprintf(format, args...)}
}
