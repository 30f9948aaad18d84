package repository

import (
	"testing"

	"github.com/sparkmigrate/advisor-api/internal/advisor"
	"github.com/stretchr/testify/assert"
)

func TestMostCommonRisk(t *testing.T) {
	tests := []struct {
		name     string
		counts   map[advisor.RiskLevel]int
		expected advisor.RiskLevel
	}{
		{
			name:     "empty history",
			counts:   map[advisor.RiskLevel]int{},
			expected: "",
		},
		{
			name:     "clear mode",
			counts:   map[advisor.RiskLevel]int{advisor.RiskLow: 1, advisor.RiskMedium: 4, advisor.RiskHigh: 2},
			expected: advisor.RiskMedium,
		},
		{
			name:     "tie breaks lexically",
			counts:   map[advisor.RiskLevel]int{advisor.RiskLow: 3, advisor.RiskMedium: 3},
			expected: advisor.RiskLow,
		},
		{
			name:     "high only",
			counts:   map[advisor.RiskLevel]int{advisor.RiskHigh: 1},
			expected: advisor.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mostCommonRisk(tt.counts))
		})
	}
}
