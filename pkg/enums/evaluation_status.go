package enums

import "fmt"

// EvaluationStatus is the workflow state of a performance evaluation.
//
// The workflow is strictly draft -> submitted -> approved | rejected.
// Approved and rejected are terminal.
type EvaluationStatus string

const (
	EvaluationStatusDraft     EvaluationStatus = "draft"
	EvaluationStatusSubmitted EvaluationStatus = "submitted"
	EvaluationStatusApproved  EvaluationStatus = "approved"
	EvaluationStatusRejected  EvaluationStatus = "rejected"
)

var validEvaluationStatuses = []EvaluationStatus{
	EvaluationStatusDraft,
	EvaluationStatusSubmitted,
	EvaluationStatusApproved,
	EvaluationStatusRejected,
}

var evaluationTransitions = map[EvaluationStatus][]EvaluationStatus{
	EvaluationStatusDraft:     {EvaluationStatusSubmitted},
	EvaluationStatusSubmitted: {EvaluationStatusApproved, EvaluationStatusRejected},
	EvaluationStatusApproved:  {},
	EvaluationStatusRejected:  {},
}

// String implements fmt.Stringer.
func (e EvaluationStatus) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EvaluationStatus.
func (e EvaluationStatus) IsValid() bool {
	for _, candidate := range validEvaluationStatuses {
		if candidate == e {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (e EvaluationStatus) IsTerminal() bool {
	return len(evaluationTransitions[e]) == 0 && e.IsValid()
}

// CanTransitionTo reports whether the workflow permits moving to next.
func (e EvaluationStatus) CanTransitionTo(next EvaluationStatus) bool {
	for _, candidate := range evaluationTransitions[e] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseEvaluationStatus converts raw input into an EvaluationStatus.
func ParseEvaluationStatus(value string) (EvaluationStatus, error) {
	for _, candidate := range validEvaluationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid evaluation status %q", value)
}
