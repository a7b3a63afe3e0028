package domain

import "fmt"

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeAlreadySignedUp ErrorCode = "ALREADY_SIGNED_UP"
	ErrorCodeNotSignedUp     ErrorCode = "NOT_SIGNED_UP"
)

// DomainError carries the code and HTTP status a handler should answer with.
type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
