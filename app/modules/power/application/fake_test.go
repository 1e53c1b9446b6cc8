package powerservice

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	powerdb "github.com/FamilyVerse/party-os/app/modules/power/infrastructure/repositories"
)

// FakePowerDB is an in-memory PowerDB with SQL-equivalent clamp and guard
// behavior.
type FakePowerDB struct {
	Config *powerdb.GameConfig
	Tasks  map[uuid.UUID]*powerdb.PartyTask
}

func NewFakePowerDB() *FakePowerDB {
	return &FakePowerDB{Tasks: make(map[uuid.UUID]*powerdb.PartyTask)}
}

func (f *FakePowerDB) GetConfig(ctx context.Context) (*powerdb.GameConfig, error) {
	if f.Config == nil {
		return nil, powerdb.ErrConfigNotFound
	}
	copied := *f.Config
	return &copied, nil
}

func (f *FakePowerDB) EnsureConfig(ctx context.Context, cfg *powerdb.GameConfig) error {
	if f.Config == nil {
		cfg.ID = 1
		cfg.Version = 1
		f.Config = cfg
	}
	return nil
}

func (f *FakePowerDB) AddPower(ctx context.Context, delta int) (bool, error) {
	if f.Config == nil || f.Config.Paused {
		return false, nil
	}
	level := f.Config.PowerLevel + delta
	if level > 100 {
		level = 100
	}
	if level < 0 {
		level = 0
	}
	f.Config.PowerLevel = level
	f.Config.Version++
	return true, nil
}

func (f *FakePowerDB) SetPaused(ctx context.Context, paused bool, at *time.Time) error {
	f.Config.Paused = paused
	f.Config.PausedAt = at
	f.Config.Version++
	return nil
}

func (f *FakePowerDB) ShiftPhaseStart(ctx context.Context, delta time.Duration) error {
	f.Config.PhaseStartedAt = f.Config.PhaseStartedAt.Add(delta)
	f.Config.Paused = false
	f.Config.PausedAt = nil
	f.Config.Version++
	return nil
}

func (f *FakePowerDB) ResetPhase(ctx context.Context, powerLevel int, at time.Time) error {
	f.Config.PowerLevel = powerLevel
	f.Config.PhaseStartedAt = at
	f.Config.Version++
	return nil
}

func (f *FakePowerDB) CreateTask(ctx context.Context, task *powerdb.PartyTask) error {
	task.ID = uuid.New()
	f.Tasks[task.ID] = task
	return nil
}

func (f *FakePowerDB) GetTask(ctx context.Context, id uuid.UUID) (*powerdb.PartyTask, error) {
	task, ok := f.Tasks[id]
	if !ok {
		return nil, powerdb.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *FakePowerDB) ListTasks(ctx context.Context) ([]powerdb.PartyTask, error) {
	var tasks []powerdb.PartyTask
	for _, t := range f.Tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (f *FakePowerDB) CompleteTask(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error) {
	task, ok := f.Tasks[id]
	if !ok || task.CompletedAt != nil {
		return false, nil
	}
	task.CompletedBy = &userID
	task.CompletedAt = &at
	return true, nil
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
