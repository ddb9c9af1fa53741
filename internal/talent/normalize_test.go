package talent

import (
	"reflect"
	"testing"
)

func TestNormalizeSkill(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Python", "python"},
		{"  Java  ", "java"},
		{"IoT", "iot"},
		{"", ""},
		{"  ", ""},
		{"PCB Design", "pcb design"},
	}
	for _, tc := range cases {
		if got := NormalizeSkill(tc.in); got != tc.want {
			t.Errorf("NormalizeSkill(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeSkills_Forms(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["python","java"]`, []string{"python", "java"}},
		{"json string with csv", `"python, java"`, []string{"python", "java"}},
		{"json string with json array", `"[\"python\",\"java\"]"`, []string{"python", "java"}},
		{"plain text", `python, java`, []string{"python", "java"}},
		{"empty string", `""`, []string{}},
		{"null", `null`, []string{}},
		{"trailing comma keeps empty entry", `"java,"`, []string{"java", ""}},
		{"mixed array types", `["go", 5]`, []string{"go", "5"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeSkills([]byte(tc.raw))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DecodeSkills(%q) = %#v, want %#v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDecodeSkills_Absent(t *testing.T) {
	got := DecodeSkills(nil)
	if len(got) != 0 {
		t.Fatalf("expected empty sequence for absent skills, got %#v", got)
	}
}

func TestDecodeSkills_StringAndSequenceFormsAgree(t *testing.T) {
	fromString := DecodeSkills([]byte(`"python, java"`))
	fromArray := DecodeSkills([]byte(`["python","java"]`))
	if !reflect.DeepEqual(fromString, fromArray) {
		t.Fatalf("comma-string form %#v differs from sequence form %#v", fromString, fromArray)
	}
}

func TestHasSkill_CaseInsensitive(t *testing.T) {
	c := Candidate{Skills: []string{"Python", "  Java "}}
	for _, target := range []string{"python", "PYTHON", " java"} {
		if !c.HasSkill(target) {
			t.Errorf("expected candidate to have skill %q", target)
		}
	}
	if c.HasSkill("go") {
		t.Error("did not expect candidate to have skill go")
	}
}
