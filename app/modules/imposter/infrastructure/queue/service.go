package imposterqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"

	imposterservice "github.com/FamilyVerse/party-os/app/modules/imposter/application"
)

// Service schedules round lifecycle jobs with River.
type Service struct {
	client *river.Client[pgx.Tx]
	pool   *pgxpool.Pool
	db     *bun.DB
	logger *slog.Logger
}

var _ imposterservice.RoundScheduler = (*Service)(nil)

// NewService creates the River-backed queue service. River needs its own pgx
// pool, separate from the bun connection.
func NewService(ctx context.Context, bunDB *bun.DB, dsn string, imposter *imposterservice.ImposterService, logger *slog.Logger) (*Service, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// River manages its own schema (river_job and friends); bring it up to
	// date before the first insert.
	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run River migrations: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRoundStartWorker(imposter, logger))
	river.AddWorker(workers, NewRoundWarningWorker(imposter, logger))
	river.AddWorker(workers, NewRoundVotingWorker(imposter, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{client: client, pool: pool, db: bunDB, logger: logger}, nil
}

// Start begins working queued jobs.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.Info("Round queue started")
	return nil
}

// Stop drains and stops the queue.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.Info("Round queue stopped")
	return nil
}

// ScheduleRoundStart queues the LOBBY→ACTIVE flip for a scheduled round.
func (s *Service) ScheduleRoundStart(ctx context.Context, roundID uuid.UUID, at time.Time) error {
	return s.schedule(ctx, RoundStartJob{RoundID: roundID}, at)
}

// ScheduleWarning queues the one-shot end-of-round warning.
func (s *Service) ScheduleWarning(ctx context.Context, roundID uuid.UUID, at time.Time) error {
	return s.schedule(ctx, RoundWarningJob{RoundID: roundID}, at)
}

// ScheduleVotingTransition queues the ACTIVE→VOTING flip at the round's end.
func (s *Service) ScheduleVotingTransition(ctx context.Context, roundID uuid.UUID, at time.Time) error {
	return s.schedule(ctx, RoundVotingJob{RoundID: roundID}, at)
}

func (s *Service) schedule(ctx context.Context, args river.JobArgs, at time.Time) error {
	res, err := s.client.Insert(ctx, args, &river.InsertOpts{
		ScheduledAt: at,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s job: %w", args.Kind(), err)
	}
	s.logger.Info("Round job scheduled",
		slog.String("kind", args.Kind()),
		slog.Time("at", at),
		slog.Int64("job_id", res.Job.ID),
	)
	return nil
}

// CancelRoundJobs cancels every pending job for a round, typically when the
// host ends it early.
func (s *Service) CancelRoundJobs(ctx context.Context, roundID uuid.UUID) error {
	jobs, err := s.pendingJobs(ctx, roundID)
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			return fmt.Errorf("failed to cancel job %d: %w", job.ID, err)
		}
	}
	if len(jobs) > 0 {
		s.logger.Info("Cancelled round jobs",
			slog.String("round_id", roundID.String()),
			slog.Int("count", len(jobs)),
		)
	}
	return nil
}

// GetScheduledJobs lists the pending jobs of a round for the host's view.
func (s *Service) GetScheduledJobs(ctx context.Context, roundID uuid.UUID) ([]JobInfo, error) {
	jobs, err := s.pendingJobs(ctx, roundID)
	if err != nil {
		return nil, err
	}
	infos := make([]JobInfo, 0, len(jobs))
	for _, job := range jobs {
		info := JobInfo{
			ID:      job.ID,
			Kind:    job.Kind,
			RoundID: roundID.String(),
			State:   job.State,
		}
		if job.ScheduledAt != nil {
			info.ScheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

type riverJobRow struct {
	ID          int64      `bun:"id"`
	Kind        string     `bun:"kind"`
	State       string     `bun:"state"`
	ScheduledAt *time.Time `bun:"scheduled_at"`
}

// pendingJobs queries river_job directly; River has no args-based lookup.
func (s *Service) pendingJobs(ctx context.Context, roundID uuid.UUID) ([]riverJobRow, error) {
	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at").
		Where("kind IN (?, ?, ?)", RoundStartJob{}.Kind(), RoundWarningJob{}.Kind(), RoundVotingJob{}.Kind()).
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'round_id' = ?", roundID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to query round jobs: %w", err)
	}
	return jobs, nil
}
