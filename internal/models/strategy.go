package models

import (
	"time"

	"github.com/sparkmigrate/advisor-api/internal/advisor"
)

// StrategyRecord is one entry in a user's optimization history: the
// request as submitted and the strategy derived from it.
type StrategyRecord struct {
	ID        string                   `json:"id" db:"id"`
	UserID    string                   `json:"user_id" db:"user_id"`
	TableName string                   `json:"table_name" db:"table_name"`
	Request   advisor.MigrationRequest `json:"request" db:"request"`
	Result    advisor.StrategyResult   `json:"result" db:"result"`
	CreatedAt time.Time                `json:"created_at" db:"created_at"`
}

// SessionStats aggregates a user's optimization history.
type SessionStats struct {
	TotalOptimizations    int                       `json:"total_optimizations"`
	AvgQualityScore       float64                   `json:"avg_quality_score"`
	AvgProcessingTime     float64                   `json:"avg_processing_time"`
	AvgSuccessProbability float64                   `json:"avg_success_probability"`
	MostCommonRiskLevel   advisor.RiskLevel         `json:"most_common_risk_level"`
	RiskLevelCounts       map[advisor.RiskLevel]int `json:"risk_level_counts"`
}
