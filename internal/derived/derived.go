// Package derived computes the read-only fields that are never persisted:
// goal status, competency gaps and progress, and evaluation averages. All
// functions are pure and are called at the response boundary only, so the
// same record always serializes the same way on list and detail paths.
package derived

import (
	"math"
	"time"

	"github.com/perfval/perfval-backend/pkg/enums"
)

// CategoryRatings holds the five per-category scores of an evaluation.
type CategoryRatings struct {
	Technical     int
	Communication int
	Teamwork      int
	Leadership    int
	Productivity  int
}

// GoalStatus derives a goal's lifecycle state. A fully-progressed goal is
// completed even when its due date has passed.
func GoalStatus(progress int, dueDate, now time.Time) enums.GoalStatus {
	if progress >= 100 {
		return enums.GoalStatusCompleted
	}
	if dueDate.Before(now) {
		return enums.GoalStatusOverdue
	}
	return enums.GoalStatusInProgress
}

// CompetencyGap is the remaining distance to the target level. Negative when
// the current level already exceeds the target.
func CompetencyGap(current, target int) int {
	return target - current
}

// CompetencyProgressPct expresses the current level as a rounded percentage
// of the target. A non-positive target yields 0.
func CompetencyProgressPct(current, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(current) / float64(target) * 100))
}

// AverageCategoryRating is the unrounded mean of the five category scores.
func AverageCategoryRating(r CategoryRatings) float64 {
	sum := r.Technical + r.Communication + r.Teamwork + r.Leadership + r.Productivity
	return float64(sum) / 5
}

// NextReviewDate defaults a competency's review date to six calendar months
// after the assessment.
func NextReviewDate(assessment time.Time) time.Time {
	return assessment.AddDate(0, 6, 0)
}
