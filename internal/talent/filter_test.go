package talent

import (
	"reflect"
	"testing"
)

func intPtr(n int) *int { return &n }

func testCandidates() []Candidate {
	return []Candidate{
		{ID: 1, Name: "Asha", Location: "Bangalore, India", Experience: "5 years", Salary: "₹18 LPA", Skills: []string{"Python", "IoT"}},
		{ID: 2, Name: "Ravi", Location: "Bangalore North, India", Experience: "2", Salary: "₹10 LPA", Skills: []string{"java", "Python"}},
		{ID: 3, Name: "Meena", Location: "Chennai, India", Experience: "12 years", Salary: "₹40 LPA", Skills: []string{"Java", "IoT"}},
		{ID: 4, Name: "Kiran", Experience: "", Salary: "", Skills: nil},
	}
}

func ids(candidates []Candidate) []int {
	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter_ExactSkillCaseInsensitive(t *testing.T) {
	candidates := testCandidates()

	upper := Filter{Skill: "Python"}.Apply(candidates)
	lower := Filter{Skill: "python"}.Apply(candidates)

	if !reflect.DeepEqual(ids(upper), ids(lower)) {
		t.Fatalf("case variants disagree: %v vs %v", ids(upper), ids(lower))
	}
	if want := []int{1, 2}; !reflect.DeepEqual(ids(upper), want) {
		t.Fatalf("expected candidates %v, got %v", want, ids(upper))
	}
}

func TestFilter_SubstringSkill(t *testing.T) {
	got := Filter{Query: "jav"}.Apply(testCandidates())
	if want := []int{2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestFilter_MultiSkillModes(t *testing.T) {
	candidates := testCandidates()

	all := Filter{Skills: []string{"Java", "IoT"}, Mode: MatchAll}.Apply(candidates)
	if want := []int{3}; !reflect.DeepEqual(ids(all), want) {
		t.Fatalf("ALL: expected %v, got %v", want, ids(all))
	}

	anyMode := Filter{Skills: []string{"Java", "IoT"}, Mode: MatchAny}.Apply(candidates)
	if want := []int{1, 2, 3}; !reflect.DeepEqual(ids(anyMode), want) {
		t.Fatalf("ANY: expected union %v, got %v", want, ids(anyMode))
	}
}

func TestParseMatchMode_DefaultsToAny(t *testing.T) {
	for _, in := range []string{"", "any", "all", "ANYTHING", "Both"} {
		if got := ParseMatchMode(in); got != MatchAny {
			t.Errorf("ParseMatchMode(%q) = %q, want ANY", in, got)
		}
	}
	if got := ParseMatchMode("ALL"); got != MatchAll {
		t.Errorf("ParseMatchMode(ALL) = %q, want ALL", got)
	}
}

func TestFilter_ExperienceRange(t *testing.T) {
	// Kiran's blank experience parses as 0 and stays inside min-less bounds.
	got := Filter{ExperienceMax: intPtr(5)}.Apply(testCandidates())
	if want := []int{1, 2, 4}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}

	got = Filter{ExperienceMin: intPtr(3), ExperienceMax: intPtr(12)}.Apply(testCandidates())
	if want := []int{1, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected inclusive bounds %v, got %v", want, ids(got))
	}
}

func TestFilter_SalaryRange(t *testing.T) {
	got := Filter{SalaryMin: intPtr(15), SalaryMax: intPtr(20)}.Apply(testCandidates())
	if want := []int{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected only the ₹18 LPA candidate, got %v", ids(got))
	}
}

func TestFilter_LocationExactCitySegment(t *testing.T) {
	got := Filter{Location: "Bangalore"}.Apply(testCandidates())
	if want := []int{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected exact city match only, got %v", ids(got))
	}

	got = Filter{Location: "bangalore"}.Apply(testCandidates())
	if want := []int{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected case-insensitive match, got %v", ids(got))
	}
}

func TestFilter_CombinedDimensionsAnd(t *testing.T) {
	f := Filter{Skill: "python", ExperienceMin: intPtr(3), Location: "Bangalore"}
	got := f.Apply(testCandidates())
	if want := []int{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected AND composition %v, got %v", want, ids(got))
	}
}

func TestFilter_EmptyResultIsValid(t *testing.T) {
	got := Filter{Skill: "cobol"}.Apply(testCandidates())
	if len(got) != 0 {
		t.Fatalf("expected zero matches, got %d", len(got))
	}
}

func TestRelatedSkills(t *testing.T) {
	candidates := Filter{Skill: "python"}.Apply(testCandidates())
	related := RelatedSkills(candidates, "python")

	if len(related) != 2 {
		t.Fatalf("expected 2 related skills, got %#v", related)
	}
	// IoT and java each co-occur once; ties keep first-encountered order.
	if related[0].Skill != "IoT" || related[0].Count != 1 {
		t.Errorf("unexpected first related skill %#v", related[0])
	}
	if related[1].Skill != "java" || related[1].Count != 1 {
		t.Errorf("unexpected second related skill %#v", related[1])
	}
}

func TestRelatedSkills_SortedDescending(t *testing.T) {
	candidates := []Candidate{
		{Skills: []string{"go", "docker"}},
		{Skills: []string{"go", "docker"}},
		{Skills: []string{"go", "k8s"}},
	}
	related := RelatedSkills(candidates, "go")
	if related[0].Skill != "docker" || related[0].Count != 2 {
		t.Fatalf("expected docker first with count 2, got %#v", related)
	}
}

func TestMatchingSkills_DistinctOriginalCase(t *testing.T) {
	candidates := []Candidate{
		{Skills: []string{"Java", "JavaScript"}},
		{Skills: []string{"Java", "javascript"}},
	}
	got := MatchingSkills(candidates, "java")
	want := []string{"Java", "JavaScript", "javascript"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGroupBySkill(t *testing.T) {
	requested := []string{"Java", "IoT"}
	filtered := Filter{Skills: requested, Mode: MatchAny}.Apply(testCandidates())

	groups, counts := GroupBySkill(filtered, requested)

	if want := []int{2, 3}; !reflect.DeepEqual(ids(groups["Java"]), want) {
		t.Errorf("Java group: expected %v, got %v", want, ids(groups["Java"]))
	}
	if want := []int{1, 3}; !reflect.DeepEqual(ids(groups["IoT"]), want) {
		t.Errorf("IoT group: expected %v, got %v", want, ids(groups["IoT"]))
	}

	if counts[0].Skill != "Java" || counts[0].Normalized != "java" || counts[0].Count != 2 {
		t.Errorf("unexpected first skill count %#v", counts[0])
	}
	if counts[1].Skill != "IoT" || counts[1].Normalized != "iot" || counts[1].Count != 2 {
		t.Errorf("unexpected second skill count %#v", counts[1])
	}
}

func TestCityOf(t *testing.T) {
	cases := map[string]string{
		"Bangalore, India":       "Bangalore",
		"Chennai":                "Chennai",
		"  Pune , Maharashtra":   "Pune",
		"":                       "",
		"Hyderabad, TS, IN":      "Hyderabad",
	}
	for in, want := range cases {
		if got := CityOf(in); got != want {
			t.Errorf("CityOf(%q) = %q, want %q", in, got, want)
		}
	}
}
