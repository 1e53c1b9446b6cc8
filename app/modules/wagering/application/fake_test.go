package wagerservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	wagerdb "github.com/FamilyVerse/party-os/app/modules/wagering/infrastructure/repositories"
)

// FakeBetDB is an in-memory BetDB with the same atomicity guarantees as the
// real implementation: debits fail without side effects when the wallet is
// short, and settlement claims a bet exactly once.
type FakeBetDB struct {
	mu      sync.Mutex
	Wallets map[uuid.UUID]int64
	Bets    map[uuid.UUID]*wagerdb.Bet
	Closed  map[uuid.UUID]bool

	PlaceBetErr error
	SettleErr   error
	CreditErr   error
}

func NewFakeBetDB() *FakeBetDB {
	return &FakeBetDB{
		Wallets: make(map[uuid.UUID]int64),
		Bets:    make(map[uuid.UUID]*wagerdb.Bet),
		Closed:  make(map[uuid.UUID]bool),
	}
}

func (f *FakeBetDB) PlaceBet(ctx context.Context, bet *wagerdb.Bet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PlaceBetErr != nil {
		return f.PlaceBetErr
	}
	if f.Wallets[bet.BettorID] < bet.Amount {
		return wagerdb.ErrInsufficientFunds
	}
	f.Wallets[bet.BettorID] -= bet.Amount
	bet.ID = uuid.New()
	stored := *bet
	f.Bets[bet.ID] = &stored
	return nil
}

func (f *FakeBetDB) GetBet(ctx context.Context, id uuid.UUID) (*wagerdb.Bet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bet, ok := f.Bets[id]
	if !ok {
		return nil, wagerdb.ErrBetNotFound
	}
	copied := *bet
	return &copied, nil
}

func (f *FakeBetDB) ListBetsForGame(ctx context.Context, gameID uuid.UUID) ([]wagerdb.Bet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bets []wagerdb.Bet
	for _, bet := range f.Bets {
		if bet.GameID == gameID {
			bets = append(bets, *bet)
		}
	}
	return bets, nil
}

func (f *FakeBetDB) ListBetsForUser(ctx context.Context, userID uuid.UUID) ([]wagerdb.Bet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bets []wagerdb.Bet
	for _, bet := range f.Bets {
		if bet.BettorID == userID {
			bets = append(bets, *bet)
		}
	}
	return bets, nil
}

func (f *FakeBetDB) ListPendingBets(ctx context.Context, gameID uuid.UUID) ([]wagerdb.Bet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bets []wagerdb.Bet
	for _, bet := range f.Bets {
		if bet.GameID == gameID && bet.Status == wagerdb.BetStatusPending {
			bets = append(bets, *bet)
		}
	}
	return bets, nil
}

func (f *FakeBetDB) SettleBetIfPending(ctx context.Context, betID uuid.UUID, status wagerdb.BetStatus, payout int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SettleErr != nil {
		return false, f.SettleErr
	}
	bet, ok := f.Bets[betID]
	if !ok || bet.Status != wagerdb.BetStatusPending {
		return false, nil
	}
	bet.Status = status
	bet.Payout = &payout
	return true, nil
}

func (f *FakeBetDB) CreditWallet(ctx context.Context, userID uuid.UUID, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreditErr != nil {
		return f.CreditErr
	}
	f.Wallets[userID] += amount
	return nil
}

func (f *FakeBetDB) SetBettingClosed(ctx context.Context, gameID uuid.UUID, closed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed[gameID] = closed
	return nil
}

func (f *FakeBetDB) IsBettingClosed(ctx context.Context, gameID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Closed[gameID], nil
}

// TotalWallets sums every wallet balance, for conservation checks.
func (f *FakeBetDB) TotalWallets() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, balance := range f.Wallets {
		total += balance
	}
	return total
}

// FakeOutcome returns a fixed winner or error.
type FakeOutcome struct {
	WinnerID uuid.UUID
	Err      error
}

func (f *FakeOutcome) Winner(ctx context.Context, gameID uuid.UUID) (uuid.UUID, error) {
	if f.Err != nil {
		return uuid.Nil, f.Err
	}
	return f.WinnerID, nil
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
	Err       error
}

func (f *FakeEventBus) Publish(ctx context.Context, stream, subject string, payload any) error {
	if f.Err != nil {
		return f.Err
	}
	f.Published = append(f.Published, PublishedEvent{Stream: stream, Subject: subject, Payload: payload})
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	return nil, nil
}

func (f *FakeEventBus) CreateStream(ctx context.Context, stream string) error { return nil }

func (f *FakeEventBus) Close() error { return nil }
