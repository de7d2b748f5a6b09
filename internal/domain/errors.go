package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports that the export lacks the columns a timestamp can be
// built from. It is the only dataset-level failure; nothing is analyzed.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: required columns missing: %s", strings.Join(e.Missing, ", "))
}
