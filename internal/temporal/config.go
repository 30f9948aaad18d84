package temporal

import "time"

// TaskQueueName is the name of the Temporal task queue used for advisor training workflows.
const TaskQueueName = "ADVISOR_TRAINING"

// TrainingWorkflowIDPrefix is the prefix used for advisor training workflow IDs.
const TrainingWorkflowIDPrefix = "advisor-training-"

// DefaultActivityTimeout is the default timeout duration for Temporal activities in training workflows.
const DefaultActivityTimeout = 5 * time.Minute

// TrainingParams defines the input for advisor training workflows.
type TrainingParams struct {
	UserID   string
	RunID    string
	Episodes int
}

// TrainingResult holds the results produced by the training activity.
// The trainer is a simulation: the numbers are fixed regardless of input.
type TrainingResult struct {
	TotalEpisodes    int
	SuccessRate      float64
	AvgReward        float64
	AvgEpisodeLength float64
}
