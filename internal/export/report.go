// Package export writes strategy reports to disk as JSON documents.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sparkmigrate/advisor-api/internal/advisor"
)

// Filename returns the report filename for the given timestamp, of the
// form migration_strategy_<YYYYMMDD_HHMMSS>.json.
func Filename(t time.Time) string {
	return fmt.Sprintf("migration_strategy_%s.json", t.Format("20060102_150405"))
}

// Write serializes the strategy into dir and returns the generated
// filename. The document contains exactly the strategy's wire fields.
func Write(dir string, result advisor.StrategyResult, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create export directory")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize strategy")
	}

	filename := Filename(now)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write strategy report")
	}
	return filename, nil
}
