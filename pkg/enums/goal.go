package enums

import "fmt"

// GoalTargetType distinguishes the planning horizon of a goal.
type GoalTargetType string

const (
	GoalTargetQuarterly GoalTargetType = "quarterly"
	GoalTargetAnnual    GoalTargetType = "annual"
)

var validGoalTargetTypes = []GoalTargetType{
	GoalTargetQuarterly,
	GoalTargetAnnual,
}

// String implements fmt.Stringer.
func (g GoalTargetType) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GoalTargetType.
func (g GoalTargetType) IsValid() bool {
	for _, candidate := range validGoalTargetTypes {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGoalTargetType converts raw input into a GoalTargetType.
func ParseGoalTargetType(value string) (GoalTargetType, error) {
	for _, candidate := range validGoalTargetTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid goal target type %q", value)
}

// GoalStatus is never stored; it is derived from progress and due date at
// serialization time.
type GoalStatus string

const (
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusOverdue    GoalStatus = "overdue"
	GoalStatusInProgress GoalStatus = "in-progress"
)

var validGoalStatuses = []GoalStatus{
	GoalStatusCompleted,
	GoalStatusOverdue,
	GoalStatusInProgress,
}

// String implements fmt.Stringer.
func (g GoalStatus) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GoalStatus.
func (g GoalStatus) IsValid() bool {
	for _, candidate := range validGoalStatuses {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGoalStatus converts raw input into a GoalStatus.
func ParseGoalStatus(value string) (GoalStatus, error) {
	for _, candidate := range validGoalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid goal status %q", value)
}
