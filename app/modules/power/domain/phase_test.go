package powerdomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	blackout := 20 * time.Minute
	killer := 60 * time.Second

	tests := []struct {
		name          string
		power         int
		elapsed       time.Duration
		wantPhase     Phase
		wantRemaining int
		wantPower     int
	}{
		{
			name:          "fresh day at full power",
			power:         100,
			elapsed:       0,
			wantPhase:     PhaseDay,
			wantRemaining: 20 * 60,
			wantPower:     100,
		},
		{
			name:          "mid day decays linearly",
			power:         100,
			elapsed:       10 * time.Minute,
			wantPhase:     PhaseDay,
			wantRemaining: 10 * 60,
			wantPower:     50,
		},
		{
			name:          "final ten seconds is the warning",
			power:         100,
			elapsed:       20*time.Minute - 5*time.Second,
			wantPhase:     PhaseWarning,
			wantRemaining: 5,
			wantPower:     0,
		},
		{
			name:          "night follows the day",
			power:         100,
			elapsed:       20*time.Minute + 15*time.Second,
			wantPhase:     PhaseNight,
			wantRemaining: 45,
			wantPower:     0,
		},
		{
			name:          "cycle wraps back to day",
			power:         100,
			elapsed:       21 * time.Minute,
			wantPhase:     PhaseDay,
			wantRemaining: 20 * 60,
			wantPower:     100,
		},
		{
			name:          "half power halves the day",
			power:         50,
			elapsed:       5 * time.Minute,
			wantPhase:     PhaseDay,
			wantRemaining: 5 * 60,
			wantPower:     25,
		},
		{
			name:          "zero power is permanent night",
			power:         0,
			elapsed:       30 * time.Second,
			wantPhase:     PhaseNight,
			wantRemaining: 30,
			wantPower:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Compute(tt.power, blackout, killer, tt.elapsed)
			assert.Equal(t, tt.wantPhase, snap.Phase)
			assert.Equal(t, tt.wantRemaining, snap.RemainingSeconds)
			assert.Equal(t, tt.wantPower, snap.PowerLevel)
		})
	}
}

func TestClampPower(t *testing.T) {
	assert.Equal(t, 0, ClampPower(-5))
	assert.Equal(t, 100, ClampPower(140))
	assert.Equal(t, 85, ClampPower(85))
}
