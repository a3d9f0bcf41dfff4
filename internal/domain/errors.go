package domain

import "fmt"

// SchemaViolation reports an exported field that breaks the record contract
type SchemaViolation struct {
	Path       string // entity path, e.g. berths[0].bollards[2].hooks[1].tension
	Value      any
	Constraint string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation at %s: expected %s, got %v", e.Path, e.Constraint, e.Value)
}
