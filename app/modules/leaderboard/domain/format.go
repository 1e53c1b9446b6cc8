package leaderboarddomain

import "fmt"

// FormatLapTime renders a millisecond lap time for display:
// "m:ss.mmm" at one minute and above, "s.mmm" below.
func FormatLapTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	millis := ms % 1000

	if minutes > 0 {
		return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
	}
	return fmt.Sprintf("%d.%03d", seconds, millis)
}
