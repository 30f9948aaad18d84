package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sparkmigrate/advisor-api/internal/advisor"
	"github.com/sparkmigrate/advisor-api/internal/models"
)

type StrategyRepository interface {
	Create(userID, tableName string, request advisor.MigrationRequest, result advisor.StrategyResult) (models.StrategyRecord, error)
	Get(userID, strategyID string) (models.StrategyRecord, error)
	List(userID string, limit, offset int) ([]models.StrategyRecord, error)
	Stats(userID string) (models.SessionStats, error)
}

type strategyRepository struct {
	db *sql.DB
}

func NewStrategyRepository(db *sql.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

func (r *strategyRepository) Create(userID, tableName string, request advisor.MigrationRequest, result advisor.StrategyResult) (models.StrategyRecord, error) {
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return models.StrategyRecord{}, fmt.Errorf("marshal request: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return models.StrategyRecord{}, fmt.Errorf("marshal result: %w", err)
	}

	record := models.StrategyRecord{
		UserID:    userID,
		TableName: tableName,
		Request:   request,
		Result:    result,
	}

	query := `
		INSERT INTO advisor.strategies (user_id, table_name, request, result)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = r.db.QueryRow(query, userID, tableName, requestJSON, resultJSON).Scan(&record.ID, &record.CreatedAt)
	return record, err
}

func (r *strategyRepository) Get(userID, strategyID string) (models.StrategyRecord, error) {
	query := `
		SELECT id, user_id, table_name, request, result, created_at
		FROM advisor.strategies
		WHERE user_id = $1 AND id = $2
	`
	return scanStrategy(r.db.QueryRow(query, userID, strategyID))
}

func (r *strategyRepository) List(userID string, limit, offset int) ([]models.StrategyRecord, error) {
	query := `
		SELECT id, user_id, table_name, request, result, created_at
		FROM advisor.strategies
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.StrategyRecord
	for rows.Next() {
		record, err := scanStrategy(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *strategyRepository) Stats(userID string) (models.SessionStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG((result->'expected_performance'->>'quality_score')::float), 0),
			COALESCE(AVG((result->'expected_performance'->>'processing_time_minutes')::float), 0),
			COALESCE(AVG((result->'expected_performance'->>'success_probability')::float), 0)
		FROM advisor.strategies
		WHERE user_id = $1
	`

	var stats models.SessionStats
	err := r.db.QueryRow(query, userID).Scan(
		&stats.TotalOptimizations,
		&stats.AvgQualityScore,
		&stats.AvgProcessingTime,
		&stats.AvgSuccessProbability,
	)
	if err != nil {
		return models.SessionStats{}, err
	}

	countQuery := `
		SELECT result->'risk_assessment'->>'risk_level', COUNT(*)
		FROM advisor.strategies
		WHERE user_id = $1
		GROUP BY 1
	`
	rows, err := r.db.Query(countQuery, userID)
	if err != nil {
		return models.SessionStats{}, err
	}
	defer rows.Close()

	stats.RiskLevelCounts = make(map[advisor.RiskLevel]int)
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return models.SessionStats{}, err
		}
		stats.RiskLevelCounts[advisor.RiskLevel(level)] = count
	}
	if err := rows.Err(); err != nil {
		return models.SessionStats{}, err
	}

	stats.MostCommonRiskLevel = mostCommonRisk(stats.RiskLevelCounts)
	return stats, nil
}

// mostCommonRisk picks the mode of the risk counts. Ties break toward the
// lexically first level so the result is stable.
func mostCommonRisk(counts map[advisor.RiskLevel]int) advisor.RiskLevel {
	var best advisor.RiskLevel
	bestCount := 0
	for _, level := range []advisor.RiskLevel{advisor.RiskHigh, advisor.RiskLow, advisor.RiskMedium} {
		if count := counts[level]; count > bestCount {
			best = level
			bestCount = count
		}
	}
	return best
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStrategy(row rowScanner) (models.StrategyRecord, error) {
	var record models.StrategyRecord
	var requestJSON, resultJSON []byte

	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.TableName,
		&requestJSON,
		&resultJSON,
		&record.CreatedAt,
	); err != nil {
		return models.StrategyRecord{}, err
	}

	if err := json.Unmarshal(requestJSON, &record.Request); err != nil {
		return models.StrategyRecord{}, fmt.Errorf("unmarshal request: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &record.Result); err != nil {
		return models.StrategyRecord{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return record, nil
}
