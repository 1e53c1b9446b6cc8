package imposterdomain

// RoundState is the lifecycle state of an imposter round.
type RoundState string

const (
	RoundStateLobby  RoundState = "LOBBY"
	RoundStateActive RoundState = "ACTIVE"
	RoundStateVoting RoundState = "VOTING"
	RoundStateEnded  RoundState = "ENDED"
)

// ValidTransition reports whether a round may move between two states.
// ENDED is terminal.
func ValidTransition(from, to RoundState) bool {
	switch from {
	case RoundStateLobby:
		return to == RoundStateActive
	case RoundStateActive:
		return to == RoundStateVoting
	case RoundStateVoting:
		return to == RoundStateEnded
	default:
		return false
	}
}

// Role is a player's secret assignment for the round.
type Role string

const (
	RoleCrewmate Role = "CREWMATE"
	RoleImposter Role = "IMPOSTER"
)

// PlayerState tracks whether a player is still in the round.
type PlayerState string

const (
	PlayerStateAlive      PlayerState = "ALIVE"
	PlayerStateEliminated PlayerState = "ELIMINATED"
)

// Verdict is the admin-adjudicated outcome of a finished round.
type Verdict string

const (
	VerdictCrewWin     Verdict = "CREW_WIN"
	VerdictImposterWin Verdict = "IMPOSTER_WIN"
	VerdictUndecided   Verdict = "UNDECIDED"
)

// ValidVerdict reports whether a verdict value is one of the known outcomes.
func ValidVerdict(v Verdict) bool {
	switch v {
	case VerdictCrewWin, VerdictImposterWin, VerdictUndecided:
		return true
	}
	return false
}
