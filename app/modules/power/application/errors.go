package powerservice

import "errors"

var (
	// ErrGamePaused is returned when a task completion arrives while the
	// cycle is paused.
	ErrGamePaused = errors.New("game is paused")

	// ErrTaskAlreadyDone is returned when a task was completed before.
	ErrTaskAlreadyDone = errors.New("task already completed")

	// ErrNotPaused is returned when resume is called on a running cycle.
	ErrNotPaused = errors.New("game is not paused")

	// ErrAlreadyPaused is returned when pause is called twice.
	ErrAlreadyPaused = errors.New("game is already paused")

	// ErrInvalidBonus is returned for a task bonus outside (0, 100].
	ErrInvalidBonus = errors.New("bonus percent must be between 1 and 100")
)
