package talent

import (
	"reflect"
	"testing"
)

func TestBuildSkillIndex_GroupsCaseVariants(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Skills: []string{"Python", "Java"}},
		{ID: 2, Skills: []string{"python "}},
		{ID: 3, Skills: []string{"JAVA"}},
	}

	index := BuildSkillIndex(candidates)
	if len(index) != 2 {
		t.Fatalf("expected 2 skill groups, got %d", len(index))
	}

	byKey := map[string]SkillGroup{}
	for _, group := range index {
		byKey[NormalizeSkill(group.Skill)] = group
	}

	java, ok := byKey["java"]
	if !ok {
		t.Fatal("missing java group")
	}
	if java.Skill != "Java" {
		t.Errorf("expected first-seen casing Java, got %q", java.Skill)
	}
	if java.Count != 2 || len(java.Candidates) != 2 {
		t.Errorf("expected java count 2, got count=%d candidates=%d", java.Count, len(java.Candidates))
	}

	python := byKey["python"]
	if python.Count != 2 {
		t.Errorf("expected python count 2 (case variants summed), got %d", python.Count)
	}
}

func TestBuildSkillIndex_SortedAscending(t *testing.T) {
	candidates := []Candidate{
		{Skills: []string{"Zig", "angular", "Bash"}},
	}
	index := BuildSkillIndex(candidates)

	got := make([]string, 0, len(index))
	for _, group := range index {
		got = append(got, group.Skill)
	}
	want := []string{"angular", "Bash", "Zig"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected locale-aware ascending order %v, got %v", want, got)
	}
}

func TestBuildSkillIndex_Empty(t *testing.T) {
	if got := BuildSkillIndex(nil); len(got) != 0 {
		t.Fatalf("expected empty index, got %#v", got)
	}
}

func TestSkillVariations(t *testing.T) {
	candidates := []Candidate{
		{Skills: []string{"Python"}},
		{Skills: []string{"python"}},
		{Skills: []string{"PYTHON", "Java"}},
		{Skills: []string{"Python"}},
	}
	got := SkillVariations(candidates, "python")
	want := []string{"Python", "python", "PYTHON"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected variations %v, got %v", want, got)
	}
}

func TestDisplaySkill(t *testing.T) {
	candidates := []Candidate{
		{Skills: []string{"Go", "PyThOn"}},
		{Skills: []string{"python"}},
	}
	if got := DisplaySkill(candidates, "PYTHON"); got != "PyThOn" {
		t.Errorf("expected first-seen casing PyThOn, got %q", got)
	}
	if got := DisplaySkill(candidates, "rust"); got != "rust" {
		t.Errorf("expected fallback to requested form, got %q", got)
	}
}
