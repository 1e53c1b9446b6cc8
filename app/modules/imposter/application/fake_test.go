package imposterservice

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	imposterdomain "github.com/FamilyVerse/party-os/app/modules/imposter/domain"
	imposterdb "github.com/FamilyVerse/party-os/app/modules/imposter/infrastructure/repositories"
	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
)

// FakeImposterDB is an in-memory ImposterDB with the same guarded-update
// semantics as the bun implementation.
type FakeImposterDB struct {
	Rounds  map[uuid.UUID]*imposterdb.ImposterRound
	Players map[uuid.UUID][]*imposterdb.PlayerStatus
}

func NewFakeImposterDB() *FakeImposterDB {
	return &FakeImposterDB{
		Rounds:  make(map[uuid.UUID]*imposterdb.ImposterRound),
		Players: make(map[uuid.UUID][]*imposterdb.PlayerStatus),
	}
}

func (f *FakeImposterDB) CreateRound(ctx context.Context, round *imposterdb.ImposterRound, players []imposterdb.PlayerStatus) error {
	round.ID = uuid.New()
	f.Rounds[round.ID] = round
	for i := range players {
		players[i].RoundID = round.ID
		players[i].ID = uuid.New()
		p := players[i]
		f.Players[round.ID] = append(f.Players[round.ID], &p)
	}
	return nil
}

func (f *FakeImposterDB) GetRound(ctx context.Context, id uuid.UUID) (*imposterdb.ImposterRound, error) {
	round, ok := f.Rounds[id]
	if !ok {
		return nil, imposterdb.ErrRoundNotFound
	}
	copied := *round
	return &copied, nil
}

func (f *FakeImposterDB) ListRounds(ctx context.Context) ([]imposterdb.ImposterRound, error) {
	var rounds []imposterdb.ImposterRound
	for _, r := range f.Rounds {
		rounds = append(rounds, *r)
	}
	return rounds, nil
}

func (f *FakeImposterDB) TransitionRound(ctx context.Context, id uuid.UUID, from, to imposterdomain.RoundState, at time.Time) (bool, error) {
	round, ok := f.Rounds[id]
	if !ok || round.Status != from {
		return false, nil
	}
	round.Status = to
	switch to {
	case imposterdomain.RoundStateActive:
		round.StartedAt = &at
	case imposterdomain.RoundStateVoting:
		round.VotingAt = &at
	case imposterdomain.RoundStateEnded:
		round.EndedAt = &at
	}
	return true, nil
}

func (f *FakeImposterDB) SetVerdict(ctx context.Context, id uuid.UUID, verdict imposterdomain.Verdict) error {
	round, ok := f.Rounds[id]
	if !ok {
		return imposterdb.ErrRoundNotFound
	}
	round.Verdict = &verdict
	return nil
}

func (f *FakeImposterDB) ClaimWarning(ctx context.Context, id uuid.UUID) (bool, error) {
	round, ok := f.Rounds[id]
	if !ok || round.WarningSent {
		return false, nil
	}
	round.WarningSent = true
	return true, nil
}

func (f *FakeImposterDB) ClaimKill(ctx context.Context, id uuid.UUID, at, earliest time.Time) (bool, error) {
	round, ok := f.Rounds[id]
	if !ok {
		return false, nil
	}
	if round.LastKillAt != nil && round.LastKillAt.After(earliest) {
		return false, nil
	}
	round.LastKillAt = &at
	return true, nil
}

func (f *FakeImposterDB) GetPlayer(ctx context.Context, roundID, userID uuid.UUID) (*imposterdb.PlayerStatus, error) {
	for _, p := range f.Players[roundID] {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, imposterdb.ErrPlayerNotFound
}

func (f *FakeImposterDB) ListPlayers(ctx context.Context, roundID uuid.UUID) ([]imposterdb.PlayerStatus, error) {
	var players []imposterdb.PlayerStatus
	for _, p := range f.Players[roundID] {
		players = append(players, *p)
	}
	return players, nil
}

func (f *FakeImposterDB) EliminatePlayer(ctx context.Context, roundID, userID, killedBy uuid.UUID, at time.Time) (bool, error) {
	for _, p := range f.Players[roundID] {
		if p.UserID == userID && p.State == imposterdomain.PlayerStateAlive {
			p.State = imposterdomain.PlayerStateEliminated
			p.KilledAt = &at
			p.KilledBy = &killedBy
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeImposterDB) UpdatePlayerRole(ctx context.Context, roundID, userID uuid.UUID, role imposterdomain.Role) error {
	for _, p := range f.Players[roundID] {
		if p.UserID == userID {
			p.Role = role
			return nil
		}
	}
	return imposterdb.ErrPlayerNotFound
}

// FakeGuestDB serves approved-guest lookups for roster validation.
type FakeGuestDB struct {
	Guests map[uuid.UUID]*partydb.PartyUser
}

func NewFakeGuestDB() *FakeGuestDB {
	return &FakeGuestDB{Guests: make(map[uuid.UUID]*partydb.PartyUser)}
}

func (f *FakeGuestDB) AddApproved(id uuid.UUID, name string) {
	f.Guests[id] = &partydb.PartyUser{ID: id, DisplayName: name, Status: partydb.GuestStatusApproved}
}

func (f *FakeGuestDB) CreateGuest(ctx context.Context, guest *partydb.PartyUser) error {
	f.Guests[guest.ID] = guest
	return nil
}

func (f *FakeGuestDB) GetGuest(ctx context.Context, id uuid.UUID) (*partydb.PartyUser, error) {
	guest, ok := f.Guests[id]
	if !ok {
		return nil, partydb.ErrGuestNotFound
	}
	return guest, nil
}

func (f *FakeGuestDB) GetGuestByName(ctx context.Context, displayName string) (*partydb.PartyUser, error) {
	for _, g := range f.Guests {
		if g.DisplayName == displayName {
			return g, nil
		}
	}
	return nil, partydb.ErrGuestNotFound
}

func (f *FakeGuestDB) ListGuests(ctx context.Context) ([]partydb.PartyUser, error) {
	var guests []partydb.PartyUser
	for _, g := range f.Guests {
		guests = append(guests, *g)
	}
	return guests, nil
}

func (f *FakeGuestDB) ListApprovedGuests(ctx context.Context) ([]partydb.PartyUser, error) {
	var guests []partydb.PartyUser
	for _, g := range f.Guests {
		if g.Status == partydb.GuestStatusApproved {
			guests = append(guests, *g)
		}
	}
	return guests, nil
}

func (f *FakeGuestDB) UpdateGuestStatus(ctx context.Context, id uuid.UUID, status partydb.GuestStatus) error {
	guest, ok := f.Guests[id]
	if !ok {
		return partydb.ErrGuestNotFound
	}
	guest.Status = status
	return nil
}

func (f *FakeGuestDB) CreditWallet(ctx context.Context, id uuid.UUID, amount int64) error {
	guest, ok := f.Guests[id]
	if !ok {
		return partydb.ErrGuestNotFound
	}
	guest.WalletBalance += amount
	return nil
}

// ScheduledJob records one scheduler call.
type ScheduledJob struct {
	Kind    string
	RoundID uuid.UUID
	At      time.Time
}

// FakeScheduler records scheduled round jobs.
type FakeScheduler struct {
	Jobs      []ScheduledJob
	Cancelled []uuid.UUID
}

func (f *FakeScheduler) ScheduleRoundStart(ctx context.Context, roundID uuid.UUID, at time.Time) error {
	f.Jobs = append(f.Jobs, ScheduledJob{Kind: "start", RoundID: roundID, At: at})
	return nil
}

func (f *FakeScheduler) ScheduleWarning(ctx context.Context, roundID uuid.UUID, at time.Time) error {
	f.Jobs = append(f.Jobs, ScheduledJob{Kind: "warning", RoundID: roundID, At: at})
	return nil
}

func (f *FakeScheduler) ScheduleVotingTransition(ctx context.Context, roundID uuid.UUID, at time.Time) error {
	f.Jobs = append(f.Jobs, ScheduledJob{Kind: "voting", RoundID: roundID, At: at})
	return nil
}

func (f *FakeScheduler) CancelRoundJobs(ctx context.Context, roundID uuid.UUID) error {
	f.Cancelled = append(f.Cancelled, roundID)
	return nil
}

// FixedWords always deals the same word/hint pair.
type FixedWords struct {
	Word string
	Hint string
}

func (f *FixedWords) NextWord(ctx context.Context) (string, string, error) {
	return f.Word, f.Hint, nil
}

// PublishedEvent records one EventBus.Publish call.
type PublishedEvent struct {
	Stream  string
	Subject string
	Payload any
}

// FakeEventBus records published events for assertions.
type FakeEventBus struct {
	Published []PublishedEvent
}

func (f *FakeEventBus) Publish(ctx context.Context, stream, subject string, payload any) error {
	f.Published = append(f.Published, PublishedEvent{Stream: stream, Subject: subject, Payload: payload})
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *FakeEventBus) CreateStream(ctx context.Context, stream string) error { return nil }

func (f *FakeEventBus) Close() error { return nil }
