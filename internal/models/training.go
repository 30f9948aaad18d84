package models

import "time"

const (
	TrainingStatusPending   = "pending"
	TrainingStatusRunning   = "running"
	TrainingStatusCompleted = "completed"
	TrainingStatusFailed    = "failed"
)

// TrainingRun is one simulated model-training execution.
type TrainingRun struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user_id"`
	Episodes         int        `json:"episodes" db:"episodes"`
	Status           string     `json:"status" db:"status"`
	SuccessRate      *float64   `json:"success_rate" db:"success_rate"`
	AvgReward        *float64   `json:"avg_reward" db:"avg_reward"`
	AvgEpisodeLength *float64   `json:"avg_episode_length" db:"avg_episode_length"`
	ErrorMessage     *string    `json:"error_message" db:"error_message"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
	RunStartedAt     *time.Time `json:"run_started_at" db:"run_started_at"`
	RunCompletedAt   *time.Time `json:"run_completed_at" db:"run_completed_at"`
}
