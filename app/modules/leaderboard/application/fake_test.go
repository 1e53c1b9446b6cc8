package leaderboardservice

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	leaderboarddomain "github.com/FamilyVerse/party-os/app/modules/leaderboard/domain"
	leaderboarddb "github.com/FamilyVerse/party-os/app/modules/leaderboard/infrastructure/repositories"
)

// ------------------------
// Fake Leaderboard Repo
// ------------------------

// FakeLeaderboardDB provides a programmable stub for the leaderboarddb.LeaderboardDB interface.
type FakeLeaderboardDB struct {
	trace []string

	CreateGameFunc      func(ctx context.Context, game *leaderboarddb.PartyGame) error
	GetGameFunc         func(ctx context.Context, id uuid.UUID) (*leaderboarddb.PartyGame, error)
	ListGamesFunc       func(ctx context.Context) ([]leaderboarddb.PartyGame, error)
	SetGameStatusFunc   func(ctx context.Context, id uuid.UUID, status leaderboarddb.GameStatus) error
	InsertRaceEntryFunc func(ctx context.Context, entry *leaderboarddb.SimRaceEntry) error
	BestRaceScoresFunc  func(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error)
	InsertTrickshotFunc func(ctx context.Context, score *leaderboarddb.TrickshotScore) error
	TrickshotTotalsFunc func(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error)

	InsertedEntries    []*leaderboarddb.SimRaceEntry
	InsertedTrickshots []*leaderboarddb.TrickshotScore
}

func NewFakeLeaderboardDB() *FakeLeaderboardDB {
	return &FakeLeaderboardDB{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeLeaderboardDB) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeaderboardDB) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLeaderboardDB) CreateGame(ctx context.Context, game *leaderboarddb.PartyGame) error {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, game)
	}
	game.ID = uuid.New()
	return nil
}

func (f *FakeLeaderboardDB) GetGame(ctx context.Context, id uuid.UUID) (*leaderboarddb.PartyGame, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, id)
	}
	return nil, leaderboarddb.ErrGameNotFound
}

func (f *FakeLeaderboardDB) ListGames(ctx context.Context) ([]leaderboarddb.PartyGame, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeLeaderboardDB) SetGameStatus(ctx context.Context, id uuid.UUID, status leaderboarddb.GameStatus) error {
	f.record("SetGameStatus")
	if f.SetGameStatusFunc != nil {
		return f.SetGameStatusFunc(ctx, id, status)
	}
	return nil
}

func (f *FakeLeaderboardDB) InsertRaceEntry(ctx context.Context, entry *leaderboarddb.SimRaceEntry) error {
	f.record("InsertRaceEntry")
	f.InsertedEntries = append(f.InsertedEntries, entry)
	if f.InsertRaceEntryFunc != nil {
		return f.InsertRaceEntryFunc(ctx, entry)
	}
	entry.ID = uuid.New()
	return nil
}

func (f *FakeLeaderboardDB) BestRaceScores(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error) {
	f.record("BestRaceScores")
	if f.BestRaceScoresFunc != nil {
		return f.BestRaceScoresFunc(ctx, gameID)
	}
	return nil, nil
}

func (f *FakeLeaderboardDB) InsertTrickshot(ctx context.Context, score *leaderboarddb.TrickshotScore) error {
	f.record("InsertTrickshot")
	f.InsertedTrickshots = append(f.InsertedTrickshots, score)
	if f.InsertTrickshotFunc != nil {
		return f.InsertTrickshotFunc(ctx, score)
	}
	score.ID = uuid.New()
	return nil
}

func (f *FakeLeaderboardDB) TrickshotTotals(ctx context.Context, gameID uuid.UUID) ([]leaderboarddomain.BestScore, error) {
	f.record("TrickshotTotals")
	if f.TrickshotTotalsFunc != nil {
		return f.TrickshotTotalsFunc(ctx, gameID)
	}
	return nil, nil
}

// ------------------------
// Fake EventBus
// ------------------------

// PublishedEvent captures one Publish call made against the fake bus.
type PublishedEvent struct {
	Stream  string
	Subject string
	Payload any
}

// FakeEventBus records published events for assertions.
type FakeEventBus struct {
	Published   []PublishedEvent
	PublishFunc func(ctx context.Context, stream, subject string, payload any) error
}

func NewFakeEventBus() *FakeEventBus {
	return &FakeEventBus{}
}

func (f *FakeEventBus) Publish(ctx context.Context, stream, subject string, payload any) error {
	f.Published = append(f.Published, PublishedEvent{Stream: stream, Subject: subject, Payload: payload})
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, stream, subject, payload)
	}
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *FakeEventBus) CreateStream(ctx context.Context, stream string) error { return nil }

func (f *FakeEventBus) Close() error { return nil }
