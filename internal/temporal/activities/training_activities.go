package activities

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.temporal.io/sdk/activity"

	"github.com/sparkmigrate/advisor-api/internal/notification"
	"github.com/sparkmigrate/advisor-api/internal/repository"
	"github.com/sparkmigrate/advisor-api/internal/temporal"
)

type Activities struct {
	TrainingRepo  repository.TrainingRepository
	Notifier      notification.Service
	TrainingDelay time.Duration
}

func (a *Activities) MarkRunningActivity(ctx context.Context, runID string) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Marking training run as running", "runID", runID)

	err := a.TrainingRepo.MarkRunning(runID)
	if err != nil {
		logger.Error("Failed to mark training run as running", "error", err)
	}
	return err
}

// RunTrainingActivity simulates a training pass. It blocks for the
// configured delay, heartbeating so long delays stay visible, and returns
// the fixed result set the dashboard advertises.
func (a *Activities) RunTrainingActivity(ctx context.Context, params temporal.TrainingParams) (*temporal.TrainingResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Running simulated training", "runID", params.RunID, "episodes", params.Episodes)

	remaining := a.TrainingDelay
	for remaining > 0 {
		step := time.Second
		if remaining < step {
			step = remaining
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "training interrupted")
		case <-time.After(step):
		}
		remaining -= step
		activity.RecordHeartbeat(ctx, remaining.String())
	}

	return &temporal.TrainingResult{
		TotalEpisodes:    params.Episodes,
		SuccessRate:      0.85,
		AvgReward:        0.72,
		AvgEpisodeLength: 45.3,
	}, nil
}

func (a *Activities) CompleteRunActivity(ctx context.Context, params temporal.TrainingParams, result temporal.TrainingResult) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Completing training run", "runID", params.RunID)

	if err := a.TrainingRepo.CompleteRun(params.RunID, result.SuccessRate, result.AvgReward, result.AvgEpisodeLength); err != nil {
		return errors.Wrap(err, "failed to persist training results")
	}
	if err := a.Notifier.NotifyTrainingCompleted(ctx, params.UserID, params.RunID, result.TotalEpisodes, result.SuccessRate); err != nil {
		logger.Warn("Failed to send training completion notification", "error", err)
	}
	return nil
}

func (a *Activities) FailRunActivity(ctx context.Context, params temporal.TrainingParams, reason string) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Failing training run", "runID", params.RunID, "reason", reason)

	if err := a.TrainingRepo.FailRun(params.RunID, reason); err != nil {
		return errors.Wrap(err, "failed to persist training failure")
	}
	if err := a.Notifier.NotifyTrainingFailed(ctx, params.UserID, params.RunID, reason); err != nil {
		logger.Warn("Failed to send training failure notification", "error", err)
	}
	return nil
}
