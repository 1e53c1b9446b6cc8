package imposterqueue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/riverqueue/river"

	imposterservice "github.com/FamilyVerse/party-os/app/modules/imposter/application"
)

// RoundStartWorker activates scheduled rounds.
type RoundStartWorker struct {
	river.WorkerDefaults[RoundStartJob]
	service *imposterservice.ImposterService
	logger  *slog.Logger
}

func NewRoundStartWorker(service *imposterservice.ImposterService, logger *slog.Logger) *RoundStartWorker {
	return &RoundStartWorker{service: service, logger: logger}
}

func (w *RoundStartWorker) Work(ctx context.Context, job *river.Job[RoundStartJob]) error {
	err := w.service.ActivateRound(ctx, job.Args.RoundID)
	if errors.Is(err, imposterservice.ErrWrongRoundState) {
		// The host started or cancelled the round before the job ran.
		w.logger.Info("Skipping round start, round already moved on",
			slog.String("round_id", job.Args.RoundID.String()))
		return nil
	}
	return err
}

// RoundWarningWorker publishes the one-shot warning.
type RoundWarningWorker struct {
	river.WorkerDefaults[RoundWarningJob]
	service *imposterservice.ImposterService
	logger  *slog.Logger
}

func NewRoundWarningWorker(service *imposterservice.ImposterService, logger *slog.Logger) *RoundWarningWorker {
	return &RoundWarningWorker{service: service, logger: logger}
}

func (w *RoundWarningWorker) Work(ctx context.Context, job *river.Job[RoundWarningJob]) error {
	return w.service.SendWarning(ctx, job.Args.RoundID)
}

// RoundVotingWorker moves rounds to VOTING at their end time.
type RoundVotingWorker struct {
	river.WorkerDefaults[RoundVotingJob]
	service *imposterservice.ImposterService
	logger  *slog.Logger
}

func NewRoundVotingWorker(service *imposterservice.ImposterService, logger *slog.Logger) *RoundVotingWorker {
	return &RoundVotingWorker{service: service, logger: logger}
}

func (w *RoundVotingWorker) Work(ctx context.Context, job *river.Job[RoundVotingJob]) error {
	err := w.service.StartVoting(ctx, job.Args.RoundID)
	if errors.Is(err, imposterservice.ErrWrongRoundState) {
		// The host moved the round to voting early.
		w.logger.Info("Skipping voting transition, round already moved on",
			slog.String("round_id", job.Args.RoundID.String()))
		return nil
	}
	return err
}
