// Package repository provides data access over *sql.DB for the alcolens
// tables.  Sentinel errors declared here let handlers and services map
// failure kinds to distinct user-facing responses: the token errors in
// particular are expected outcomes a patient must be able to tell apart
// (request a new link vs. already completed), not generic failures.
package repository

import "errors"

// ErrTokenNotFound is returned when no invite token matches the hash of a
// presented secret.  A never-issued secret and a tampered one are
// deliberately indistinguishable.
var ErrTokenNotFound = errors.New("invite token not found")

// ErrTokenUsed is returned when the matching token has already been
// redeemed.  Redemption is terminal; a used token never becomes valid again.
var ErrTokenUsed = errors.New("invite token already used")

// ErrTokenExpired is returned when the matching token exists and is unused
// but its expiry has passed.
var ErrTokenExpired = errors.New("invite token expired")

// ErrPatientNotFound is returned when an operation references a patient
// record that does not exist.
var ErrPatientNotFound = errors.New("patient not found")

// ErrEmailExists is returned when registering a clinician with an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")
