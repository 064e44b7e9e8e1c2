package services

import "errors"

// Caller-correctable input problems (map to 400).
var (
	ErrNameRequired         = errors.New("either full name, or first and last names must be set")
	ErrVerificationCode     = errors.New("verification code incorrect")
	ErrNameInUse            = errors.New("name already in use by a different profile")
	ErrAlreadyClaimed       = errors.New("profile already has an account")
	ErrSpouseExists         = errors.New("profile already has spouse")
	ErrAlreadyChildOfFamily = errors.New("profile is already a child of another family")
	ErrUsernameTaken        = errors.New("a user with that username already exists")
	ErrAlreadyAssigned      = errors.New("profile already assigned to this roster")
	ErrInvalidStatus        = errors.New("invalid assignment status")
)

// Auth and visibility errors. A profile the requester may not see maps to
// the same not-found signal as a missing one.
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrPermissionDenied   = errors.New("permission denied")
)

// ErrCodeConflict is the transient uniqueness failure of the verification
// code generator. Safe to retry once.
var ErrCodeConflict = errors.New("could not allocate a unique verification code")
