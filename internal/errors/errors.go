package errors

import "fmt"

// ErrCode represents an error code
type ErrCode string

const (
	ErrCodeUserSearch ErrCode = "USER_SEARCH_FAILED"
	ErrCodeRepoFetch  ErrCode = "REPO_FETCH_FAILED"
	ErrCodeBadRequest ErrCode = "BAD_REQUEST"
	ErrCodeInternal   ErrCode = "INTERNAL_ERROR"
)

// Fixed user-facing messages. Every failure of a given kind collapses to the
// same string; the underlying cause stays on the wrapped error for logs only.
const (
	MsgUserSearchFailed = "Failed to fetch users."
	MsgRepoFetchFailed  = "Failed to fetch repositories."
)

// AppError represents an application error
type AppError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewUserSearchError wraps a failed user search request
func NewUserSearchError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeUserSearch,
		Message: MsgUserSearchFailed,
		Err:     err,
	}
}

// NewRepoFetchError wraps a failed repository fetch
func NewRepoFetchError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeRepoFetch,
		Message: MsgRepoFetchFailed,
		Err:     err,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// IsUserSearchError checks if the error is a user search failure
func IsUserSearchError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeUserSearch
	}
	return false
}

// IsRepoFetchError checks if the error is a repository fetch failure
func IsRepoFetchError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrCodeRepoFetch
	}
	return false
}
