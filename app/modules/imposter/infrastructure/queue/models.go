package imposterqueue

import "github.com/google/uuid"

// RoundStartJob flips a scheduled LOBBY round to ACTIVE at its start time.
type RoundStartJob struct {
	RoundID uuid.UUID `json:"round_id"`
}

func (RoundStartJob) Kind() string { return "imposter_round_start" }

// RoundWarningJob fires the one-shot warning near the end of the round.
type RoundWarningJob struct {
	RoundID uuid.UUID `json:"round_id"`
}

func (RoundWarningJob) Kind() string { return "imposter_round_warning" }

// RoundVotingJob moves an ACTIVE round to VOTING at its end time.
type RoundVotingJob struct {
	RoundID uuid.UUID `json:"round_id"`
}

func (RoundVotingJob) Kind() string { return "imposter_round_voting" }

// JobInfo describes one scheduled job, for the host's debugging view.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	RoundID     string `json:"round_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
}
