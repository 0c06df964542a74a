package profile

import "errors"

var (
	// ErrProfileNotFound is returned when a named profile doesn't exist.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrProfileExists is returned when adding a name that is already taken.
	ErrProfileExists = errors.New("profile already exists")
	// ErrInvalidProfile is returned when a record is missing required fields
	// for its declared variant.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrAmbiguousProfile is returned when a name carries both IAM and SSO
	// fields across the two files.
	ErrAmbiguousProfile = errors.New("profile has both IAM and SSO fields")
)
