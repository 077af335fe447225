package enums

import "testing"

func TestEvaluationStatusTransitions(t *testing.T) {
	tests := []struct {
		from    EvaluationStatus
		to      EvaluationStatus
		allowed bool
	}{
		{EvaluationStatusDraft, EvaluationStatusSubmitted, true},
		{EvaluationStatusDraft, EvaluationStatusApproved, false},
		{EvaluationStatusDraft, EvaluationStatusRejected, false},
		{EvaluationStatusSubmitted, EvaluationStatusApproved, true},
		{EvaluationStatusSubmitted, EvaluationStatusRejected, true},
		{EvaluationStatusSubmitted, EvaluationStatusDraft, false},
		{EvaluationStatusApproved, EvaluationStatusDraft, false},
		{EvaluationStatusApproved, EvaluationStatusRejected, false},
		{EvaluationStatusRejected, EvaluationStatusSubmitted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected %v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestEvaluationStatusTerminal(t *testing.T) {
	if EvaluationStatusDraft.IsTerminal() || EvaluationStatusSubmitted.IsTerminal() {
		t.Fatal("draft/submitted must not be terminal")
	}
	if !EvaluationStatusApproved.IsTerminal() || !EvaluationStatusRejected.IsTerminal() {
		t.Fatal("approved/rejected must be terminal")
	}
}

func TestParseEvaluationStatus(t *testing.T) {
	if _, err := ParseEvaluationStatus("draft"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseEvaluationStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseUserRole(t *testing.T) {
	for _, raw := range []string{"employee", "manager", "hr", "admin"} {
		role, err := ParseUserRole(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if !role.IsValid() {
			t.Fatalf("parsed role %q reported invalid", raw)
		}
	}
	if _, err := ParseUserRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestParseCompetencyCategory(t *testing.T) {
	if _, err := ParseCompetencyCategory("Problem Solving"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseCompetencyCategory("problem solving"); err == nil {
		t.Fatal("category parsing is case sensitive")
	}
}
