package imposterservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
	imposterdb "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/repositories"
)

// RoundView is the shared shape of a round. Everyone sees the hint; the
// secret word appears only once the round has ended.
type RoundView struct {
	ID              uuid.UUID                 `json:"id"`
	GameID          uuid.UUID                 `json:"game_id"`
	Status          imposterdomain.RoundState `json:"status"`
	Hint            string                    `json:"hint"`
	Word            string                    `json:"word,omitempty"`
	DurationSeconds int                       `json:"duration_seconds"`
	ScheduledFor    *time.Time                `json:"scheduled_for,omitempty"`
	StartedAt       *time.Time                `json:"started_at,omitempty"`
	VotingAt        *time.Time                `json:"voting_at,omitempty"`
	EndedAt         *time.Time                `json:"ended_at,omitempty"`
	Verdict         *imposterdomain.Verdict   `json:"verdict,omitempty"`
}

// NewRoundView redacts a round for pollers.
func NewRoundView(r *imposterdb.ImposterRound) *RoundView {
	v := &RoundView{
		ID:              r.ID,
		GameID:          r.GameID,
		Status:          r.Status,
		Hint:            r.Hint,
		DurationSeconds: r.DurationSeconds,
		ScheduledFor:    r.ScheduledFor,
		StartedAt:       r.StartedAt,
		VotingAt:        r.VotingAt,
		EndedAt:         r.EndedAt,
		Verdict:         r.Verdict,
	}
	if r.Status == imposterdomain.RoundStateEnded {
		v.Word = r.Word
	}
	return v
}

// PlayerView hides roles and the killer's identity from the shared roster.
type PlayerView struct {
	UserID   uuid.UUID                  `json:"user_id"`
	State    imposterdomain.PlayerState `json:"state"`
	KilledAt *time.Time                 `json:"killed_at,omitempty"`
}

// NewPlayerView redacts a roster entry.
func NewPlayerView(p *imposterdb.PlayerStatus) PlayerView {
	return PlayerView{UserID: p.UserID, State: p.State, KilledAt: p.KilledAt}
}

// AssignmentView is one player's private briefing. Crewmates get the word;
// the imposter only ever gets the hint.
type AssignmentView struct {
	RoundID uuid.UUID                  `json:"round_id"`
	UserID  uuid.UUID                  `json:"user_id"`
	Role    imposterdomain.Role        `json:"role"`
	State   imposterdomain.PlayerState `json:"state"`
	Hint    string                     `json:"hint"`
	Word    string                     `json:"word,omitempty"`
}

// PlayerAssignment returns a single player's role and word-or-hint.
func (s *ImposterService) PlayerAssignment(ctx context.Context, roundID, userID uuid.UUID) (*AssignmentView, error) {
	round, err := s.ImposterDB.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	player, err := s.ImposterDB.GetPlayer(ctx, roundID, userID)
	if err != nil {
		return nil, err
	}

	view := &AssignmentView{
		RoundID: roundID,
		UserID:  userID,
		Role:    player.Role,
		State:   player.State,
		Hint:    round.Hint,
	}
	if player.Role == imposterdomain.RoleCrewmate || round.Status == imposterdomain.RoundStateEnded {
		view.Word = round.Word
	}
	return view, nil
}
