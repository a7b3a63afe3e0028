package activity

import (
	"net/http"

	"signupservice/internal/domain"
)

// ErrActivityNotFound is returned for a name outside the directory.
func ErrActivityNotFound() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    "Activity not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ErrAlreadySignedUp rejects a second sign-up of the same email.
func ErrAlreadySignedUp() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeAlreadySignedUp,
		Message:    "Student is already signed up",
		HTTPStatus: http.StatusBadRequest,
	}
}

// ErrNotSignedUp rejects removing an email that is not on the list.
func ErrNotSignedUp() error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotSignedUp,
		Message:    "Student is not signed up for this activity",
		HTTPStatus: http.StatusNotFound,
	}
}
