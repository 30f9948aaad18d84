// Package advisor derives migration strategies from user-supplied
// migration parameters. The derivation is closed-form arithmetic over the
// request scalars: the same request always produces the same result.
package advisor

import (
	"fmt"
	"math"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Data type labels accepted on a request. Carried through to the risk
// factors verbatim; not used in the arithmetic.
const (
	DataTypeStructured     = "structured"
	DataTypeSemiStructured = "semi-structured"
	DataTypeUnstructured   = "unstructured"
	DataTypeMixed          = "mixed"
)

// ResourceConstraints describes the resources available to the migration.
// Only CPU and memory feed the derivation; the remaining fields are part
// of the request contract and reserved for a future revision.
type ResourceConstraints struct {
	CPUUtilization       float64 `json:"cpu_utilization"`
	MemoryUtilization    float64 `json:"memory_utilization"`
	NetworkBandwidth     float64 `json:"network_bandwidth"`
	DiskIO               float64 `json:"disk_io"`
	ConcurrentMigrations int     `json:"concurrent_migrations"`
}

// MigrationRequest is the full set of parameters for one derivation.
type MigrationRequest struct {
	TableName           string              `json:"table_name"`
	SizeMB              float64             `json:"size_mb"`
	SchemaComplexity    float64             `json:"schema_complexity"`
	DataType            string              `json:"data_type"`
	SourceSystem        string              `json:"source_system"`
	TargetSystem        string              `json:"target_system"`
	CurrentQuality      float64             `json:"current_quality"`
	ResourceConstraints ResourceConstraints `json:"resource_constraints"`
}

type ExpectedPerformance struct {
	QualityScore          float64 `json:"quality_score"`
	ProcessingTimeMinutes float64 `json:"processing_time_minutes"`
	ResourceUsage         float64 `json:"resource_usage"`
	SuccessProbability    float64 `json:"success_probability"`
}

type ActionParameters struct {
	BatchSize           int     `json:"batch_size"`
	ParallelWorkers     int     `json:"parallel_workers"`
	CompressionLevel    int     `json:"compression_level"`
	ValidationFrequency float64 `json:"validation_frequency"`
	RetryStrategy       int     `json:"retry_strategy"`
	ResourceAllocation  float64 `json:"resource_allocation"`
	CheckpointFrequency float64 `json:"checkpoint_frequency"`
	ErrorHandling       int     `json:"error_handling"`
}

type RiskAssessment struct {
	RiskLevel            RiskLevel `json:"risk_level"`
	RiskFactors          []string  `json:"risk_factors"`
	MitigationStrategies []string  `json:"mitigation_strategies"`
}

// FallbackParameters is the scaled-down alternative to ActionParameters.
type FallbackParameters struct {
	BatchSize           int     `json:"batch_size"`
	ParallelWorkers     int     `json:"parallel_workers"`
	CompressionLevel    int     `json:"compression_level"`
	ValidationFrequency float64 `json:"validation_frequency"`
	ResourceAllocation  float64 `json:"resource_allocation"`
}

type MonitoringPoint struct {
	Metric    string `json:"metric"`
	Frequency string `json:"frequency"`
	Threshold string `json:"threshold"`
}

type Recommendations struct {
	PrimaryStrategy  string             `json:"primary_strategy"`
	FallbackStrategy FallbackParameters `json:"fallback_strategy"`
	MonitoringPoints []MonitoringPoint  `json:"monitoring_points"`
}

// StrategyResult is the derived strategy for one request. The JSON field
// names are the wire contract for persisted and exported reports.
type StrategyResult struct {
	ExpectedPerformance ExpectedPerformance `json:"expected_performance"`
	ActionParameters    ActionParameters    `json:"action_parameters"`
	RiskAssessment      RiskAssessment      `json:"risk_assessment"`
	Recommendations     Recommendations     `json:"recommendations"`
}

// DeriveStrategy maps a migration request to a strategy. It is pure and
// deterministic; callers are expected to validate the request beforehand
// (see Validate). Out-of-range numeric input still yields a fully
// populated result because every expression carries an explicit floor or
// ceiling.
func DeriveStrategy(req MigrationRequest) StrategyResult {
	batchSize := int(math.Max(1000, math.Round(req.SizeMB*10)))

	// Clamped to [1,8] before it is used as a divisor below.
	parallelWorkers := int(math.Round(req.SizeMB / 1000))
	if parallelWorkers < 1 {
		parallelWorkers = 1
	}
	if parallelWorkers > 8 {
		parallelWorkers = 8
	}

	qualityScore := math.Min(0.98, req.CurrentQuality+(1-req.SchemaComplexity)*0.1)
	processingTime := math.Max(5, req.SizeMB/float64(parallelWorkers*100))
	resourceUsage := math.Min(0.9, req.ResourceConstraints.CPUUtilization+req.ResourceConstraints.MemoryUtilization)
	successProbability := math.Max(0.7, 1-req.SchemaComplexity*0.3)

	riskLevel := classifyRisk(successProbability, qualityScore)

	return StrategyResult{
		ExpectedPerformance: ExpectedPerformance{
			QualityScore:          qualityScore,
			ProcessingTimeMinutes: processingTime,
			ResourceUsage:         resourceUsage,
			SuccessProbability:    successProbability,
		},
		ActionParameters: ActionParameters{
			BatchSize:           batchSize,
			ParallelWorkers:     parallelWorkers,
			CompressionLevel:    6,
			ValidationFrequency: 0.1,
			RetryStrategy:       1,
			ResourceAllocation:  0.8,
			CheckpointFrequency: 0.2,
			ErrorHandling:       1,
		},
		RiskAssessment: RiskAssessment{
			RiskLevel: riskLevel,
			RiskFactors: []string{
				fmt.Sprintf("Schema complexity: %.2f", req.SchemaComplexity),
				fmt.Sprintf("Data type: %s", req.DataType),
				fmt.Sprintf("System compatibility: %s → %s", req.SourceSystem, req.TargetSystem),
			},
			MitigationStrategies: []string{
				"Use incremental validation",
				"Implement rollback mechanisms",
				"Monitor resource usage closely",
			},
		},
		Recommendations: Recommendations{
			PrimaryStrategy: fmt.Sprintf("Batch processing with %d workers", parallelWorkers),
			FallbackStrategy: FallbackParameters{
				BatchSize:           batchSize / 2,
				ParallelWorkers:     max(1, parallelWorkers/2),
				CompressionLevel:    3,
				ValidationFrequency: 0.05,
				ResourceAllocation:  0.6,
			},
			MonitoringPoints: []MonitoringPoint{
				{Metric: "data_quality", Frequency: "every 1000 records", Threshold: "> 0.95"},
				{Metric: "processing_speed", Frequency: "every 5 minutes", Threshold: "> 1000 records/min"},
				{Metric: "resource_usage", Frequency: "continuous", Threshold: "< 0.9"},
			},
		},
	}
}

// classifyRisk buckets a strategy by its derived probabilities. The LOW
// test is strictly more restrictive and must run first.
func classifyRisk(successProbability, qualityScore float64) RiskLevel {
	switch {
	case successProbability > 0.9 && qualityScore > 0.95:
		return RiskLow
	case successProbability > 0.8 && qualityScore > 0.9:
		return RiskMedium
	default:
		return RiskHigh
	}
}
