package repository

import (
	"database/sql"

	"github.com/sparkmigrate/advisor-api/internal/models"
)

type TrainingRepository interface {
	CreateRun(userID string, episodes int) (models.TrainingRun, error)
	MarkRunning(runID string) error
	CompleteRun(runID string, successRate, avgReward, avgEpisodeLength float64) error
	FailRun(runID, errorMessage string) error
	GetRun(userID, runID string) (models.TrainingRun, error)
	ListRuns(userID string, limit, offset int) ([]models.TrainingRun, error)
}

type trainingRepository struct {
	db *sql.DB
}

func NewTrainingRepository(db *sql.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

func (r *trainingRepository) CreateRun(userID string, episodes int) (models.TrainingRun, error) {
	run := models.TrainingRun{
		UserID:   userID,
		Episodes: episodes,
		Status:   models.TrainingStatusPending,
	}

	query := `
		INSERT INTO advisor.training_runs (user_id, episodes, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(query, userID, episodes, run.Status).Scan(&run.ID, &run.CreatedAt, &run.UpdatedAt)
	return run, err
}

func (r *trainingRepository) MarkRunning(runID string) error {
	query := `
		UPDATE advisor.training_runs
		SET status = $2, run_started_at = now(), updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, runID, models.TrainingStatusRunning)
	return err
}

func (r *trainingRepository) CompleteRun(runID string, successRate, avgReward, avgEpisodeLength float64) error {
	query := `
		UPDATE advisor.training_runs
		SET status = $2, success_rate = $3, avg_reward = $4, avg_episode_length = $5,
			run_completed_at = now(), updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, runID, models.TrainingStatusCompleted, successRate, avgReward, avgEpisodeLength)
	return err
}

func (r *trainingRepository) FailRun(runID, errorMessage string) error {
	query := `
		UPDATE advisor.training_runs
		SET status = $2, error_message = $3, run_completed_at = now(), updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, runID, models.TrainingStatusFailed, errorMessage)
	return err
}

func (r *trainingRepository) GetRun(userID, runID string) (models.TrainingRun, error) {
	query := `
		SELECT id, user_id, episodes, status, success_rate, avg_reward, avg_episode_length,
			error_message, created_at, updated_at, run_started_at, run_completed_at
		FROM advisor.training_runs
		WHERE user_id = $1 AND id = $2
	`
	return scanTrainingRun(r.db.QueryRow(query, userID, runID))
}

func (r *trainingRepository) ListRuns(userID string, limit, offset int) ([]models.TrainingRun, error) {
	query := `
		SELECT id, user_id, episodes, status, success_rate, avg_reward, avg_episode_length,
			error_message, created_at, updated_at, run_started_at, run_completed_at
		FROM advisor.training_runs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.TrainingRun
	for rows.Next() {
		run, err := scanTrainingRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanTrainingRun(row rowScanner) (models.TrainingRun, error) {
	var run models.TrainingRun
	err := row.Scan(
		&run.ID,
		&run.UserID,
		&run.Episodes,
		&run.Status,
		&run.SuccessRate,
		&run.AvgReward,
		&run.AvgEpisodeLength,
		&run.ErrorMessage,
		&run.CreatedAt,
		&run.UpdatedAt,
		&run.RunStartedAt,
		&run.RunCompletedAt,
	)
	return run, err
}
