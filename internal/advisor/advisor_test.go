package advisor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() MigrationRequest {
	return MigrationRequest{
		TableName:        "users_table",
		SizeMB:           1000,
		SchemaComplexity: 0.6,
		DataType:         DataTypeStructured,
		SourceSystem:     "postgresql",
		TargetSystem:     "spark",
		CurrentQuality:   0.85,
		ResourceConstraints: ResourceConstraints{
			CPUUtilization:    0.7,
			MemoryUtilization: 0.8,
			NetworkBandwidth:  0.8,
			DiskIO:            0.5,
		},
	}
}

func TestDeriveStrategy(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(*MigrationRequest)
		batchSize       int
		parallelWorkers int
		quality         float64
		processingTime  float64
		resourceUsage   float64
		successProb     float64
		risk            RiskLevel
	}{
		{
			name:            "mid-size complex schema",
			mutate:          func(r *MigrationRequest) {},
			batchSize:       10000,
			parallelWorkers: 1,
			quality:         0.89,
			processingTime:  10,
			resourceUsage:   0.9,
			successProb:     0.82,
			risk:            RiskHigh,
		},
		{
			name: "larger table rounds workers up",
			mutate: func(r *MigrationRequest) {
				r.SizeMB = 2500
				r.SchemaComplexity = 0.7
			},
			batchSize:       25000,
			parallelWorkers: 3,
			quality:         0.88,
			processingTime:  2500.0 / 300.0,
			resourceUsage:   0.9,
			successProb:     0.79,
			risk:            RiskHigh,
		},
		{
			name: "simple clean schema is low risk",
			mutate: func(r *MigrationRequest) {
				r.SizeMB = 500
				r.SchemaComplexity = 0.1
				r.CurrentQuality = 0.9
				r.ResourceConstraints.CPUUtilization = 0.3
				r.ResourceConstraints.MemoryUtilization = 0.4
			},
			batchSize:       5000,
			parallelWorkers: 1,
			quality:         0.98,
			processingTime:  5,
			resourceUsage:   0.7,
			successProb:     0.97,
			risk:            RiskLow,
		},
		{
			name: "medium risk band",
			mutate: func(r *MigrationRequest) {
				r.SchemaComplexity = 0.5
				r.CurrentQuality = 0.88
			},
			batchSize:       10000,
			parallelWorkers: 1,
			quality:         0.93,
			processingTime:  10,
			resourceUsage:   0.9,
			successProb:     0.85,
			risk:            RiskMedium,
		},
		{
			name: "tiny table hits batch floor",
			mutate: func(r *MigrationRequest) {
				r.SizeMB = 50
			},
			batchSize:       1000,
			parallelWorkers: 1,
			quality:         0.89,
			processingTime:  5,
			resourceUsage:   0.9,
			successProb:     0.82,
			risk:            RiskHigh,
		},
		{
			name: "huge table caps workers at 8",
			mutate: func(r *MigrationRequest) {
				r.SizeMB = 50000
			},
			batchSize:       500000,
			parallelWorkers: 8,
			quality:         0.89,
			processingTime:  62.5,
			resourceUsage:   0.9,
			successProb:     0.82,
			risk:            RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			result := DeriveStrategy(req)

			assert.Equal(t, tt.batchSize, result.ActionParameters.BatchSize)
			assert.Equal(t, tt.parallelWorkers, result.ActionParameters.ParallelWorkers)
			assert.InDelta(t, tt.quality, result.ExpectedPerformance.QualityScore, 1e-9)
			assert.InDelta(t, tt.processingTime, result.ExpectedPerformance.ProcessingTimeMinutes, 1e-9)
			assert.InDelta(t, tt.resourceUsage, result.ExpectedPerformance.ResourceUsage, 1e-9)
			assert.InDelta(t, tt.successProb, result.ExpectedPerformance.SuccessProbability, 1e-9)
			assert.Equal(t, tt.risk, result.RiskAssessment.RiskLevel)
		})
	}
}

func TestDeriveStrategyConstants(t *testing.T) {
	result := DeriveStrategy(baseRequest())

	params := result.ActionParameters
	assert.Equal(t, 6, params.CompressionLevel)
	assert.Equal(t, 0.1, params.ValidationFrequency)
	assert.Equal(t, 1, params.RetryStrategy)
	assert.Equal(t, 0.8, params.ResourceAllocation)
	assert.Equal(t, 0.2, params.CheckpointFrequency)
	assert.Equal(t, 1, params.ErrorHandling)

	assert.Equal(t, []string{
		"Use incremental validation",
		"Implement rollback mechanisms",
		"Monitor resource usage closely",
	}, result.RiskAssessment.MitigationStrategies)

	require.Len(t, result.Recommendations.MonitoringPoints, 3)
	assert.Equal(t, MonitoringPoint{Metric: "data_quality", Frequency: "every 1000 records", Threshold: "> 0.95"}, result.Recommendations.MonitoringPoints[0])
	assert.Equal(t, MonitoringPoint{Metric: "processing_speed", Frequency: "every 5 minutes", Threshold: "> 1000 records/min"}, result.Recommendations.MonitoringPoints[1])
	assert.Equal(t, MonitoringPoint{Metric: "resource_usage", Frequency: "continuous", Threshold: "< 0.9"}, result.Recommendations.MonitoringPoints[2])
}

func TestDeriveStrategyTextFields(t *testing.T) {
	req := baseRequest()
	req.SchemaComplexity = 0.6
	req.DataType = DataTypeSemiStructured
	req.SourceSystem = "mongodb"
	req.TargetSystem = "databricks"

	result := DeriveStrategy(req)

	assert.Equal(t, []string{
		"Schema complexity: 0.60",
		"Data type: semi-structured",
		"System compatibility: mongodb → databricks",
	}, result.RiskAssessment.RiskFactors)
	assert.Equal(t, "Batch processing with 1 workers", result.Recommendations.PrimaryStrategy)
}

func TestDeriveStrategyFallback(t *testing.T) {
	req := baseRequest()
	req.SizeMB = 2500

	result := DeriveStrategy(req)
	fallback := result.Recommendations.FallbackStrategy

	assert.Equal(t, result.ActionParameters.BatchSize/2, fallback.BatchSize)
	assert.Equal(t, 1, fallback.ParallelWorkers)
	assert.Equal(t, 3, fallback.CompressionLevel)
	assert.Equal(t, 0.05, fallback.ValidationFrequency)
	assert.Equal(t, 0.6, fallback.ResourceAllocation)
}

func TestDeriveStrategyInvariants(t *testing.T) {
	sizes := []float64{1, 10, 999, 1000, 1500, 4200, 12500, 999999}
	complexities := []float64{0, 0.25, 0.5, 0.75, 1}
	qualities := []float64{0, 0.5, 0.85, 1}

	for _, size := range sizes {
		for _, complexity := range complexities {
			for _, quality := range qualities {
				req := baseRequest()
				req.SizeMB = size
				req.SchemaComplexity = complexity
				req.CurrentQuality = quality

				result := DeriveStrategy(req)

				assert.LessOrEqual(t, result.ExpectedPerformance.QualityScore, 0.98)
				assert.GreaterOrEqual(t, result.ExpectedPerformance.SuccessProbability, 0.7)
				assert.GreaterOrEqual(t, result.ActionParameters.ParallelWorkers, 1)
				assert.LessOrEqual(t, result.ActionParameters.ParallelWorkers, 8)
				assert.GreaterOrEqual(t, result.ActionParameters.BatchSize, 1000)
				assert.GreaterOrEqual(t, result.ExpectedPerformance.ProcessingTimeMinutes, 5.0)

				fallback := result.Recommendations.FallbackStrategy
				assert.Equal(t, result.ActionParameters.BatchSize/2, fallback.BatchSize)
				assert.GreaterOrEqual(t, fallback.ParallelWorkers, 1)
				assert.LessOrEqual(t, fallback.ParallelWorkers, result.ActionParameters.ParallelWorkers)

				assert.Contains(t, []RiskLevel{RiskLow, RiskMedium, RiskHigh}, result.RiskAssessment.RiskLevel)
			}
		}
	}
}

func TestDeriveStrategyDeterministic(t *testing.T) {
	req := baseRequest()
	first := DeriveStrategy(req)
	second := DeriveStrategy(req)
	assert.Equal(t, first, second)
}

func TestStrategyResultRoundTrip(t *testing.T) {
	result := DeriveStrategy(baseRequest())

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded StrategyResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MigrationRequest)
		field  string
	}{
		{name: "valid", mutate: func(r *MigrationRequest) {}},
		{name: "zero size", mutate: func(r *MigrationRequest) { r.SizeMB = 0 }, field: "size_mb"},
		{name: "negative size", mutate: func(r *MigrationRequest) { r.SizeMB = -10 }, field: "size_mb"},
		{name: "complexity above range", mutate: func(r *MigrationRequest) { r.SchemaComplexity = 1.1 }, field: "schema_complexity"},
		{name: "unknown data type", mutate: func(r *MigrationRequest) { r.DataType = "binary" }, field: "data_type"},
		{name: "quality below range", mutate: func(r *MigrationRequest) { r.CurrentQuality = -0.1 }, field: "current_quality"},
		{name: "cpu above range", mutate: func(r *MigrationRequest) { r.ResourceConstraints.CPUUtilization = 1.5 }, field: "cpu_utilization"},
		{name: "memory above range", mutate: func(r *MigrationRequest) { r.ResourceConstraints.MemoryUtilization = 2 }, field: "memory_utilization"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			err := Validate(req)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *InvalidRequestError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}
