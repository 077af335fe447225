package enums

import "fmt"

// CompetencyCategory groups skills for filtering and breakdown reporting.
type CompetencyCategory string

const (
	CompetencyCategoryTechnical      CompetencyCategory = "Technical"
	CompetencyCategorySoftSkills     CompetencyCategory = "Soft Skills"
	CompetencyCategoryLeadership     CompetencyCategory = "Leadership"
	CompetencyCategoryCommunication  CompetencyCategory = "Communication"
	CompetencyCategoryProblemSolving CompetencyCategory = "Problem Solving"
	CompetencyCategoryTeamwork       CompetencyCategory = "Teamwork"
	CompetencyCategoryAdaptability   CompetencyCategory = "Adaptability"
	CompetencyCategoryOther          CompetencyCategory = "Other"
)

var validCompetencyCategories = []CompetencyCategory{
	CompetencyCategoryTechnical,
	CompetencyCategorySoftSkills,
	CompetencyCategoryLeadership,
	CompetencyCategoryCommunication,
	CompetencyCategoryProblemSolving,
	CompetencyCategoryTeamwork,
	CompetencyCategoryAdaptability,
	CompetencyCategoryOther,
}

// String implements fmt.Stringer.
func (c CompetencyCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CompetencyCategory.
func (c CompetencyCategory) IsValid() bool {
	for _, candidate := range validCompetencyCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCompetencyCategory converts raw input into a CompetencyCategory.
func ParseCompetencyCategory(value string) (CompetencyCategory, error) {
	for _, candidate := range validCompetencyCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid competency category %q", value)
}

// CompetencyStatus tracks the assessed maturity of a skill.
type CompetencyStatus string

const (
	CompetencyStatusDeveloping       CompetencyStatus = "Developing"
	CompetencyStatusProficient       CompetencyStatus = "Proficient"
	CompetencyStatusExpert           CompetencyStatus = "Expert"
	CompetencyStatusNeedsImprovement CompetencyStatus = "Needs Improvement"
)

var validCompetencyStatuses = []CompetencyStatus{
	CompetencyStatusDeveloping,
	CompetencyStatusProficient,
	CompetencyStatusExpert,
	CompetencyStatusNeedsImprovement,
}

// String implements fmt.Stringer.
func (c CompetencyStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CompetencyStatus.
func (c CompetencyStatus) IsValid() bool {
	for _, candidate := range validCompetencyStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCompetencyStatus converts raw input into a CompetencyStatus.
func ParseCompetencyStatus(value string) (CompetencyStatus, error) {
	for _, candidate := range validCompetencyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid competency status %q", value)
}
