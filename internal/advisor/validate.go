package advisor

import "fmt"

// InvalidRequestError reports the first request field that fails
// validation.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

var dataTypes = map[string]bool{
	DataTypeStructured:     true,
	DataTypeSemiStructured: true,
	DataTypeUnstructured:   true,
	DataTypeMixed:          true,
}

// Validate checks the ranges DeriveStrategy assumes. DeriveStrategy does
// not validate on its own, so callers run this first and reject bad input.
func Validate(req MigrationRequest) error {
	if req.SizeMB <= 0 {
		return &InvalidRequestError{Field: "size_mb", Reason: "must be positive"}
	}
	if req.SchemaComplexity < 0 || req.SchemaComplexity > 1 {
		return &InvalidRequestError{Field: "schema_complexity", Reason: "must be in [0,1]"}
	}
	if !dataTypes[req.DataType] {
		return &InvalidRequestError{Field: "data_type", Reason: "must be structured, semi-structured, unstructured or mixed"}
	}
	if req.CurrentQuality < 0 || req.CurrentQuality > 1 {
		return &InvalidRequestError{Field: "current_quality", Reason: "must be in [0,1]"}
	}
	if c := req.ResourceConstraints.CPUUtilization; c < 0 || c > 1 {
		return &InvalidRequestError{Field: "cpu_utilization", Reason: "must be in [0,1]"}
	}
	if m := req.ResourceConstraints.MemoryUtilization; m < 0 || m > 1 {
		return &InvalidRequestError{Field: "memory_utilization", Reason: "must be in [0,1]"}
	}
	return nil
}
