// Package services implements the business workflows of the résumé site:
// the resume-request intake and the contact-message ingestion. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Expected conditions (invalid email, duplicate request, failed dispatch)
// are NOT errors here; they are modelled as IntakeResult outcome variants.
// These sentinels cover the genuinely exceptional persistence paths.
package services

import "errors"

var (
	// ErrPersistence indicates a transactional failure writing or reading a
	// record. The underlying cause is wrapped; user-facing surfaces should
	// show a generic "try again" message and leave the detail to logs.
	ErrPersistence = errors.New("persistence failure")

	// ErrMissingName is returned when a contact submission lacks the
	// required sender name.
	ErrMissingName = errors.New("name is required")

	// ErrInvalidEmail is returned when a contact submission carries a
	// malformed sender address.
	ErrInvalidEmail = errors.New("invalid email address")
)
