package extraction

import "fmt"

// SchemaError reports an extraction schema that cannot be built.
// Extraction itself never fails; only schema construction can.
type SchemaError struct {
	Field   string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	prefix := "schema error"
	if e.Field != "" {
		prefix = fmt.Sprintf("schema error in %s", e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
