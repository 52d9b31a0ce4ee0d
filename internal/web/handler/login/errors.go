package login

import "errors"

// Messages shown above the login form.
var (
	// ErrInvalidFormData means the posted form could not be parsed.
	ErrInvalidFormData = errors.New("the login form could not be read, please try again")

	// ErrInvalidCredentials covers unknown users, wrong passwords and disabled accounts alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInternalServerError hides database and session failures from the visitor.
	ErrInternalServerError = errors.New("sign in is unavailable right now")
)
