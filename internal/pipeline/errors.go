package pipeline

import "fmt"

// FailureKind classifies why a run failed. The kind is stored as the prefix
// of the ledger's error summary so `status` output stays greppable.
type FailureKind string

const (
	FailureSelection    FailureKind = "SelectionError"
	FailureNoVideoAsset FailureKind = "NoVideoAsset"
	FailureComposition  FailureKind = "CompositionError"
	FailureCaptionWrite FailureKind = "CaptionWriteError"
)

// RunError is a classified run failure.
type RunError struct {
	Kind FailureKind
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

func failure(kind FailureKind, err error) *RunError {
	return &RunError{Kind: kind, Err: err}
}
