package errors

import (
	"errors"
	"fmt"
	"sort"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPath         ErrorCode = "PATH"

	// Session errors
	ErrAlreadyLocked ErrorCode = "ALREADY_LOCKED"
	ErrLock          ErrorCode = "LOCK"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrInvalidRule ErrorCode = "INVALID_RULE"

	// Manifest errors
	ErrMalformedManifest ErrorCode = "MALFORMED_MANIFEST"
	ErrManifestRead      ErrorCode = "MANIFEST_READ"
	ErrManifestWrite     ErrorCode = "MANIFEST_WRITE"
	ErrManifestDelete    ErrorCode = "MANIFEST_DELETE"

	// Package errors
	ErrInvalidFilename ErrorCode = "INVALID_FILENAME"
	ErrCollision       ErrorCode = "COLLISION"
	ErrPackageExists   ErrorCode = "PACKAGE_EXISTS"
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrArchiveOpen     ErrorCode = "ARCHIVE_OPEN"
	ErrArchiveHeader   ErrorCode = "ARCHIVE_HEADER"
)

// PkgdbError represents a structured error with code and details
type PkgdbError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PkgdbError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PkgdbError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PkgdbError) Is(target error) bool {
	var targetErr *PkgdbError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PkgdbError with the given code and message
func New(code ErrorCode, message string) *PkgdbError {
	return &PkgdbError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PkgdbError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PkgdbError {
	return &PkgdbError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PkgdbError
func Wrap(err error, code ErrorCode, message string) *PkgdbError {
	if err == nil {
		return nil
	}
	return &PkgdbError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PkgdbError {
	if err == nil {
		return nil
	}
	return &PkgdbError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PkgdbError) WithDetail(key string, value interface{}) *PkgdbError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PkgdbError) WithDetails(details map[string]interface{}) *PkgdbError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// NewCollision builds the install-time conflict error. Every colliding
// path is kept so the caller sees the complete set.
func NewCollision(pkgName string, paths []string) *PkgdbError {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	msg := fmt.Sprintf("package %s collides with %d existing file(s)", pkgName, len(sorted))
	if len(sorted) == 1 {
		msg = fmt.Sprintf("package %s collides with existing file %s", pkgName, sorted[0])
	}
	return New(ErrCollision, msg).
		WithDetail("package", pkgName).
		WithDetail("paths", sorted)
}

// CollisionPaths returns the colliding paths carried by a collision error.
func CollisionPaths(err error) []string {
	details := GetErrorDetails(err)
	if details == nil || GetErrorCode(err) != ErrCollision {
		return nil
	}
	paths, _ := details["paths"].([]string)
	return paths
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pkgErr *PkgdbError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PkgdbError
func GetErrorCode(err error) ErrorCode {
	var pkgErr *PkgdbError
	if errors.As(err, &pkgErr) {
		return pkgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PkgdbError
func GetErrorDetails(err error) map[string]interface{} {
	var pkgErr *PkgdbError
	if errors.As(err, &pkgErr) {
		return pkgErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// ErrorReport is the serializable form of an error.
type ErrorReport struct {
	Code    ErrorCode              `json:"code" yaml:"code"`
	Message string                 `json:"error" yaml:"error"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Report converts err for machine-readable output.
func Report(err error) ErrorReport {
	report := ErrorReport{Code: GetErrorCode(err), Message: err.Error()}
	if details := GetErrorDetails(err); len(details) > 0 {
		report.Details = details
	}
	return report
}
