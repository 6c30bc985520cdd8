package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingEmail = errors.New("missing email query parameter")
)

// Detail strings returned in {"detail": ...} error bodies.
const (
	DetailActivityNotFound = "Activity not found"
	DetailAlreadySignedUp  = "Student is already signed up for this activity"
	DetailNotRegistered    = "Student is not registered for this activity"
	DetailMissingEmail     = "email query parameter is required"
)
