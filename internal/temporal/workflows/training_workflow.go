package workflows

import (
	"fmt"
	"time"

	"github.com/sparkmigrate/advisor-api/internal/temporal"
	"github.com/sparkmigrate/advisor-api/internal/temporal/activities"
	"go.temporal.io/sdk/workflow"
)

func TrainingWorkflow(ctx workflow.Context, params temporal.TrainingParams) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: temporal.DefaultActivityTimeout,
		HeartbeatTimeout:    30 * time.Second, // Activities can report progress.
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	logger := workflow.GetLogger(ctx)
	logger.Info("Starting training workflow", "UserID", params.UserID, "RunID", params.RunID)

	// Create an instance of activities struct.
	// The actual implementation is on the worker; this is just a proxy.
	var a *activities.Activities

	// Step 1: Mark the run as running.
	err := workflow.ExecuteActivity(ctx, a.MarkRunningActivity, params.RunID).Get(ctx, nil)
	if err != nil {
		logger.Error("Failed to mark training run as running.", "error", err)
		return err
	}

	// Step 2: Run the simulated training pass.
	var result temporal.TrainingResult
	err = workflow.ExecuteActivity(ctx, a.RunTrainingActivity, params).Get(ctx, &result)
	if err != nil {
		msg := fmt.Sprintf("Training failed: %v", err)
		workflow.ExecuteActivity(ctx, a.FailRunActivity, params, msg).Get(ctx, nil)
		logger.Error("Training activity failed.", "error", err)
		return err
	}

	// Step 3: Persist the results and notify.
	err = workflow.ExecuteActivity(ctx, a.CompleteRunActivity, params, result).Get(ctx, nil)
	if err != nil {
		msg := fmt.Sprintf("Failed during post-training processing: %v", err)
		workflow.ExecuteActivity(ctx, a.FailRunActivity, params, msg).Get(ctx, nil)
		logger.Error("Training completion handling failed.", "error", err)
		return err
	}

	logger.Info("Training workflow completed successfully.", "RunID", params.RunID)
	return nil
}
