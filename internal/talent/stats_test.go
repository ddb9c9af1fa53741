package talent

import (
	"reflect"
	"testing"
)

func TestParseExperience(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5 years", 5},
		{"12", 12},
		{"  7 yrs ", 7},
		{"around five", 0},
		{"", 0},
		{"fresher", 0},
	}
	for _, tc := range cases {
		if got := ParseExperience(tc.in); got != tc.want {
			t.Errorf("ParseExperience(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseSalary(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"₹18 LPA", 18},
		{"18", 18},
		{"INR 25 LPA", 25},
		{"", 0},
		{"negotiable", 0},
	}
	for _, tc := range cases {
		if got := ParseSalary(tc.in); got != tc.want {
			t.Errorf("ParseSalary(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAverageExperience(t *testing.T) {
	if got := AverageExperience(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}

	candidates := []Candidate{{Experience: "3"}, {Experience: "7"}}
	if got := AverageExperience(candidates); got != 5.0 {
		t.Errorf("expected 5.0, got %v", got)
	}

	// Unparsable entries contribute 0 to the sum but still count.
	candidates = []Candidate{{Experience: "4 years"}, {Experience: "n/a"}, {Experience: "6"}}
	if got := AverageExperience(candidates); got != 3.3 {
		t.Errorf("expected 3.3, got %v", got)
	}
}

func TestCommonLocations_TopFiveStable(t *testing.T) {
	candidates := []Candidate{
		{Location: "Bangalore, India"},
		{Location: "Bangalore, India"},
		{Location: "Chennai, India"},
		{Location: "Pune, India"},
		{Location: "Delhi, India"},
		{Location: "Mumbai, India"},
		{Location: "Kochi, India"},
		{Location: ""},
	}
	got := CommonLocations(candidates)
	if len(got) != 5 {
		t.Fatalf("expected top 5, got %d entries", len(got))
	}
	if got[0].Location != "Bangalore" || got[0].Count != 2 {
		t.Errorf("expected Bangalore first with count 2, got %#v", got[0])
	}
	// Ties keep first-encountered order.
	rest := []string{got[1].Location, got[2].Location, got[3].Location, got[4].Location}
	want := []string{"Chennai", "Pune", "Delhi", "Mumbai"}
	if !reflect.DeepEqual(rest, want) {
		t.Errorf("expected stable tie order %v, got %v", want, rest)
	}
}

func TestVisaStatusDistribution(t *testing.T) {
	candidates := []Candidate{
		{VisaStatus: "Not Required"},
		{VisaStatus: "H1B"},
		{VisaStatus: "Not Required"},
		{VisaStatus: ""},
	}
	got := VisaStatusDistribution(candidates)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %#v", got)
	}
	if got[0].Status != "Not Required" || got[0].Count != 2 {
		t.Errorf("unexpected first entry %#v", got[0])
	}
	if got[1].Status != "H1B" || got[1].Count != 1 {
		t.Errorf("unexpected second entry %#v", got[1])
	}
}

func TestExperienceBuckets_SumEqualsLen(t *testing.T) {
	candidates := []Candidate{
		{Experience: "0"},
		{Experience: "2 years"},
		{Experience: "3"},
		{Experience: "5"},
		{Experience: "6"},
		{Experience: "10"},
		{Experience: "11 years"},
		{Experience: "unknown"}, // parses as 0, lands in the first bucket
	}
	dist := ExperienceBuckets(candidates)

	if dist.Junior != 3 {
		t.Errorf("0-2 years: expected 3, got %d", dist.Junior)
	}
	if dist.Mid != 2 {
		t.Errorf("3-5 years: expected 2, got %d", dist.Mid)
	}
	if dist.Senior != 2 {
		t.Errorf("6-10 years: expected 2, got %d", dist.Senior)
	}
	if dist.Expert != 1 {
		t.Errorf("10+ years: expected 1, got %d", dist.Expert)
	}

	sum := dist.Junior + dist.Mid + dist.Senior + dist.Expert
	if sum != len(candidates) {
		t.Fatalf("buckets sum to %d, want %d", sum, len(candidates))
	}
}

func TestSkillPercentage(t *testing.T) {
	if got := SkillPercentage(3, 0); got != "0%" {
		t.Errorf("expected 0%% for zero total, got %q", got)
	}
	if got := SkillPercentage(2, 8); got != "25.00%" {
		t.Errorf("expected 25.00%%, got %q", got)
	}
	if got := SkillPercentage(1, 3); got != "33.33%" {
		t.Errorf("expected 33.33%%, got %q", got)
	}
}

func TestAvailableCount(t *testing.T) {
	candidates := []Candidate{
		{Status: "Available"},
		{Status: "Not Available"},
		{Status: "available"}, // exact match only
		{Status: "Available"},
	}
	if got := AvailableCount(candidates); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}
