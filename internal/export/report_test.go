package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sparkmigrate/advisor-api/internal/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "migration_strategy_20260831_140509.json", Filename(ts))
}

func TestWriteRoundTrip(t *testing.T) {
	result := advisor.DeriveStrategy(advisor.MigrationRequest{
		TableName:        "orders",
		SizeMB:           2500,
		SchemaComplexity: 0.7,
		DataType:         advisor.DataTypeStructured,
		SourceSystem:     "mysql",
		TargetSystem:     "spark",
		CurrentQuality:   0.85,
		ResourceConstraints: advisor.ResourceConstraints{
			CPUUtilization:    0.6,
			MemoryUtilization: 0.7,
		},
	})

	dir := t.TempDir()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	filename, err := Write(dir, result, now)
	require.NoError(t, err)
	assert.Equal(t, "migration_strategy_20260102_030405.json", filename)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var decoded advisor.StrategyResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, result, decoded)
}

func TestWriteFieldSet(t *testing.T) {
	result := advisor.DeriveStrategy(advisor.MigrationRequest{
		SizeMB:           100,
		SchemaComplexity: 0.2,
		DataType:         advisor.DataTypeMixed,
		SourceSystem:     "csv",
		TargetSystem:     "hive",
		CurrentQuality:   0.9,
	})

	dir := t.TempDir()
	filename, err := Write(dir, result, time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Len(t, doc, 4)
	for _, key := range []string{"expected_performance", "action_parameters", "risk_assessment", "recommendations"} {
		assert.Contains(t, doc, key)
	}
}
