package types

import "fmt"

type EngineErrorKind string

const (
	EngineFailureGeneric EngineErrorKind = "engine_failure"
	EngineWordRejected   EngineErrorKind = "word_rejected"
)

// EngineError is the tagged failure crossing the engine boundary. The kind is
// decided where the failure originates; callers must never classify by
// matching message text.
type EngineError struct {
	Kind    EngineErrorKind
	Status  int
	Message string
}

func (e *EngineError) Error() string { return e.Message }

// ValidationError marks a structurally invalid request. It fails fast, before
// any engine or session interaction.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
