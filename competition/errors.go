// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package competition

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInvalidWindow  = errors.New("invalid time window")
	ErrAlreadyExists  = errors.New("already exists")
	ErrNotEligible    = errors.New("not eligible to vote")
	ErrStateViolation = errors.New("operation not allowed in current state")
	ErrOverflow       = errors.New("arithmetic overflow")
	ErrExternalCall   = errors.New("token service call failed")
	ErrInvalidInput   = errors.New("invalid input")
)

// ErrUnknownArtist is a NotFound for an artist name that is not a current
// submission of the competition.
var ErrUnknownArtist = &unknownArtistError{}

type unknownArtistError struct{}

func (*unknownArtistError) Error() string { return "unknown artist" }

func (*unknownArtistError) Is(target error) bool { return target == ErrNotFound }
