package domain

import "errors"

// Domain errors.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("a user with this email already exists")
	ErrHackathonNotFound    = errors.New("hackathon not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("already registered for this hackathon")
	ErrNotRegistered        = errors.New("not registered for this hackathon")
	ErrHackathonFull        = errors.New("hackathon has reached its participant limit")
	ErrRegistrationClosed   = errors.New("registration deadline has passed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNotAdmin             = errors.New("only an administrator can perform this action")
	ErrNotWaitlisted        = errors.New("registration is not waitlisted")
	ErrNoWaitlisted         = errors.New("no waitlisted registration")
	ErrNotLoggedIn          = errors.New("no user is logged in")
)

// Code maps a domain error to a stable identifier usable as an i18n message
// key or an API error code. Returns "" for non-domain errors.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrHackathonNotFound):
		return "hackathon_not_found"
	case errors.Is(err, ErrRegistrationNotFound):
		return "registration_not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, ErrHackathonFull):
		return "hackathon_full"
	case errors.Is(err, ErrRegistrationClosed):
		return "registration_closed"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrNotAdmin):
		return "not_admin"
	case errors.Is(err, ErrNotWaitlisted):
		return "not_waitlisted"
	case errors.Is(err, ErrNoWaitlisted):
		return "no_waitlisted"
	case errors.Is(err, ErrNotLoggedIn):
		return "not_logged_in"
	default:
		return ""
	}
}
