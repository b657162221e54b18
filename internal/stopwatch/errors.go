package stopwatch

import "github.com/pkg/errors"

var (
	ErrRunning         = errors.New("stopwatch is running")
	ErrFlagLocked      = errors.New("no tick since the last lap")
	ErrDuplicateLap    = errors.New("lap already recorded at this time")
	ErrNonMonotonicLap = errors.New("lap is earlier than the previous lap")
	ErrNoSuchLap       = errors.New("no such lap")
)
