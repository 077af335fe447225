package report

import "testing"

type sample struct {
	category string
	level    int
}

func TestCountAndCountWhere(t *testing.T) {
	items := []sample{
		{"Technical", 2},
		{"Technical", 4},
		{"Leadership", 5},
	}

	if got := Count(items); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
	if got := CountWhere(items, func(s sample) bool { return s.level >= 4 }); got != 2 {
		t.Fatalf("expected 2 items with level >= 4, got %d", got)
	}
}

func TestMean(t *testing.T) {
	items := []sample{{"a", 2}, {"b", 3}, {"c", 4}}
	if got := Mean(items, func(s sample) float64 { return float64(s.level) }); got != 3 {
		t.Fatalf("expected mean 3, got %f", got)
	}
}

func TestMeanEmptyIsZero(t *testing.T) {
	if got := Mean(nil, func(s sample) float64 { return float64(s.level) }); got != 0 {
		t.Fatalf("expected 0 for empty input, got %f", got)
	}
}

func TestFrequencies(t *testing.T) {
	items := []sample{
		{"Technical", 2},
		{"Technical", 4},
		{"Leadership", 5},
	}
	freq := Frequencies(items, func(s sample) string { return s.category })
	if freq["Technical"] != 2 {
		t.Fatalf("expected Technical=2, got %d", freq["Technical"])
	}
	if freq["Leadership"] != 1 {
		t.Fatalf("expected Leadership=1, got %d", freq["Leadership"])
	}
	if len(freq) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(freq))
	}
}

func TestFrequenciesEmpty(t *testing.T) {
	freq := Frequencies(nil, func(s sample) string { return s.category })
	if len(freq) != 0 {
		t.Fatalf("expected empty map, got %v", freq)
	}
}
