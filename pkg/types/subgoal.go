package types

import (
	"time"

	"github.com/perfval/perfval-backend/pkg/enums"
)

// SubGoal is an evaluation-embedded milestone, stored as jsonb alongside the
// parent evaluation.
type SubGoal struct {
	Description string              `json:"description"`
	TargetDate  *time.Time          `json:"targetDate,omitempty"`
	Status      enums.SubGoalStatus `json:"status"`
}
