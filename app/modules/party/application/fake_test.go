package partyservice

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	partydb "github.com/FamilyVerse/party-os/app/modules/party/infrastructure/repositories"
)

// ------------------------
// Fake PartyUser Repo
// ------------------------

// FakePartyUserDB provides a programmable stub for the partydb.PartyUserDB interface.
type FakePartyUserDB struct {
	trace []string

	CreateGuestFunc        func(ctx context.Context, guest *partydb.PartyUser) error
	GetGuestFunc           func(ctx context.Context, id uuid.UUID) (*partydb.PartyUser, error)
	GetGuestByNameFunc     func(ctx context.Context, displayName string) (*partydb.PartyUser, error)
	ListGuestsFunc         func(ctx context.Context) ([]partydb.PartyUser, error)
	ListApprovedGuestsFunc func(ctx context.Context) ([]partydb.PartyUser, error)
	UpdateGuestStatusFunc  func(ctx context.Context, id uuid.UUID, status partydb.GuestStatus) error
	CreditWalletFunc       func(ctx context.Context, id uuid.UUID, amount int64) error
}

func NewFakePartyUserDB() *FakePartyUserDB {
	return &FakePartyUserDB{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakePartyUserDB) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakePartyUserDB) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakePartyUserDB) CreateGuest(ctx context.Context, guest *partydb.PartyUser) error {
	f.record("CreateGuest")
	if f.CreateGuestFunc != nil {
		return f.CreateGuestFunc(ctx, guest)
	}
	guest.ID = uuid.New()
	return nil
}

func (f *FakePartyUserDB) GetGuest(ctx context.Context, id uuid.UUID) (*partydb.PartyUser, error) {
	f.record("GetGuest")
	if f.GetGuestFunc != nil {
		return f.GetGuestFunc(ctx, id)
	}
	return nil, partydb.ErrGuestNotFound
}

func (f *FakePartyUserDB) GetGuestByName(ctx context.Context, displayName string) (*partydb.PartyUser, error) {
	f.record("GetGuestByName")
	if f.GetGuestByNameFunc != nil {
		return f.GetGuestByNameFunc(ctx, displayName)
	}
	return nil, partydb.ErrGuestNotFound
}

func (f *FakePartyUserDB) ListGuests(ctx context.Context) ([]partydb.PartyUser, error) {
	f.record("ListGuests")
	if f.ListGuestsFunc != nil {
		return f.ListGuestsFunc(ctx)
	}
	return nil, nil
}

func (f *FakePartyUserDB) ListApprovedGuests(ctx context.Context) ([]partydb.PartyUser, error) {
	f.record("ListApprovedGuests")
	if f.ListApprovedGuestsFunc != nil {
		return f.ListApprovedGuestsFunc(ctx)
	}
	return nil, nil
}

func (f *FakePartyUserDB) UpdateGuestStatus(ctx context.Context, id uuid.UUID, status partydb.GuestStatus) error {
	f.record("UpdateGuestStatus")
	if f.UpdateGuestStatusFunc != nil {
		return f.UpdateGuestStatusFunc(ctx, id, status)
	}
	return nil
}

func (f *FakePartyUserDB) CreditWallet(ctx context.Context, id uuid.UUID, amount int64) error {
	f.record("CreditWallet")
	if f.CreditWalletFunc != nil {
		return f.CreditWalletFunc(ctx, id, amount)
	}
	return nil
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
