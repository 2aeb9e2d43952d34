package promotion

import "errors"

var (
	ErrInvalidType = errors.New("invalid promotion type")

	ErrInvalidThreshold = errors.New("promotion threshold must be positive")

	ErrInvalidDiscountRate = errors.New("discount rate must be in (0, 1]")

	ErrInvalidGift = errors.New("gift promotion requires a gift label")

	// ErrNoCalendarEntry means no promotion calendar row exists for the
	// requested day of week. The caller decides whether to skip the day or
	// fail the run.
	ErrNoCalendarEntry = errors.New("no promotion calendar entry for day")
)
