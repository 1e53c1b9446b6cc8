package leaderboardservice

import "errors"

var (
	// ErrInvalidLapTime is returned for non-positive lap times on finishing entries.
	ErrInvalidLapTime = errors.New("lap time must be positive")

	// ErrUnknownShotType is returned for shot types outside the fixed enum.
	ErrUnknownShotType = errors.New("unknown shot type")

	// ErrNoWinnerDetermined is returned when a game has no rank-1 non-DNF entry.
	ErrNoWinnerDetermined = errors.New("no winner determined")

	// ErrWrongGameType is returned when a submission targets a game of
	// another type.
	ErrWrongGameType = errors.New("submission does not match game type")
)
