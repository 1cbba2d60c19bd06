package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFile is returned when the source path does not exist.
var ErrMissingFile = errors.New("table: source file does not exist")

// SchemaError reports a source without the required key column.
type SchemaError struct {
	Column string
	Header []string
}

func (e *SchemaError) Error() string {
	if len(e.Header) == 0 {
		return fmt.Sprintf("table: no header row, %q column required", e.Column)
	}
	return fmt.Sprintf("table: missing %q column (have %s)", e.Column, strings.Join(e.Header, ", "))
}
