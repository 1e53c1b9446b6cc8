package powerdomain

import "time"

// Phase is the current stage of the blackout cycle.
type Phase string

const (
	PhaseDay     Phase = "DAY"
	PhaseWarning Phase = "WARNING"
	PhaseNight   Phase = "NIGHT"
)

// warningWindow is the tail of the day phase announced as a blackout warning.
const warningWindow = 10 * time.Second

// Snapshot is the derived state of the cycle at one instant. Every value is
// computed from stored timestamps so all pollers see the same clock.
type Snapshot struct {
	Phase            Phase `json:"phase"`
	RemainingSeconds int   `json:"remaining_seconds"`
	PowerLevel       int   `json:"power_level"`
}

// DayLength returns how long the day phase lasts at a given power level.
// Lower power means a shorter day and a faster next blackout.
func DayLength(blackoutInterval time.Duration, powerLevel int) time.Duration {
	if powerLevel < 0 {
		powerLevel = 0
	}
	if powerLevel > 100 {
		powerLevel = 100
	}
	return blackoutInterval * time.Duration(powerLevel) / 100
}

// Compute derives the phase, the time left in it, and the decayed power level
// from the elapsed time since the cycle started. powerLevel is the meter
// value at cycle start; it drains linearly to zero across the day phase.
func Compute(powerLevel int, blackoutInterval, killerWindow, elapsed time.Duration) Snapshot {
	day := DayLength(blackoutInterval, powerLevel)
	cycle := day + killerWindow
	if cycle <= 0 {
		return Snapshot{Phase: PhaseNight}
	}

	pos := elapsed % cycle
	if pos < 0 {
		pos += cycle
	}

	switch {
	case pos < day-warningWindow:
		return Snapshot{
			Phase:            PhaseDay,
			RemainingSeconds: int((day - pos).Seconds()),
			PowerLevel:       decayed(powerLevel, pos, day),
		}
	case pos < day:
		return Snapshot{
			Phase:            PhaseWarning,
			RemainingSeconds: int((day - pos).Seconds()),
			PowerLevel:       decayed(powerLevel, pos, day),
		}
	default:
		return Snapshot{
			Phase:            PhaseNight,
			RemainingSeconds: int((cycle - pos).Seconds()),
		}
	}
}

func decayed(powerLevel int, pos, day time.Duration) int {
	if day <= 0 {
		return 0
	}
	remaining := int(int64(powerLevel) * int64(day-pos) / int64(day))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ClampPower bounds a meter value to [0, 100].
func ClampPower(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}
