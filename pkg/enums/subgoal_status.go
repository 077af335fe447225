package enums

import "fmt"

// SubGoalStatus tracks the state of a goal embedded in an evaluation.
type SubGoalStatus string

const (
	SubGoalStatusPending    SubGoalStatus = "pending"
	SubGoalStatusInProgress SubGoalStatus = "in-progress"
	SubGoalStatusCompleted  SubGoalStatus = "completed"
)

var validSubGoalStatuses = []SubGoalStatus{
	SubGoalStatusPending,
	SubGoalStatusInProgress,
	SubGoalStatusCompleted,
}

// String implements fmt.Stringer.
func (s SubGoalStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SubGoalStatus.
func (s SubGoalStatus) IsValid() bool {
	for _, candidate := range validSubGoalStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSubGoalStatus converts raw input into a SubGoalStatus.
func ParseSubGoalStatus(value string) (SubGoalStatus, error) {
	for _, candidate := range validSubGoalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sub-goal status %q", value)
}
