package workflows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/sparkmigrate/advisor-api/internal/temporal"
	"github.com/sparkmigrate/advisor-api/internal/temporal/activities"
)

func TestTrainingWorkflow(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	var a *activities.Activities
	params := temporal.TrainingParams{UserID: "user-1", RunID: "run-1", Episodes: 500}
	result := temporal.TrainingResult{TotalEpisodes: 500, SuccessRate: 0.85, AvgReward: 0.72, AvgEpisodeLength: 45.3}

	env.OnActivity(a.MarkRunningActivity, mock.Anything, "run-1").Return(nil)
	env.OnActivity(a.RunTrainingActivity, mock.Anything, params).Return(&result, nil)
	env.OnActivity(a.CompleteRunActivity, mock.Anything, params, result).Return(nil)

	env.ExecuteWorkflow(TrainingWorkflow, params)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	env.AssertExpectations(t)
}

func TestTrainingWorkflowFailureMarksRunFailed(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	var a *activities.Activities
	params := temporal.TrainingParams{UserID: "user-1", RunID: "run-2", Episodes: 500}

	env.OnActivity(a.MarkRunningActivity, mock.Anything, "run-2").Return(nil)
	env.OnActivity(a.RunTrainingActivity, mock.Anything, params).Return(nil, errors.New("simulated trainer crash"))
	env.OnActivity(a.FailRunActivity, mock.Anything, params, mock.Anything).Return(nil)

	env.ExecuteWorkflow(TrainingWorkflow, params)

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	env.AssertExpectations(t)
}
