package talent

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SkillGroup 表示一个归一化技能及持有该技能的候选人。
// Skill 保留首次出现时的原始大小写。
type SkillGroup struct {
	Skill      string      `json:"skill"`
	Count      int         `json:"count"`
	Candidates []Candidate `json:"candidates"`
}

// BuildSkillIndex groups candidates by normalized skill key. Candidates and
// counts accumulate in input order; the display form of each group keeps the
// casing of the first occurrence. The result is sorted ascending by display
// form using locale-aware comparison, which is what the skills facet in the
// UI expects. The index is rebuilt per request and never cached.
func BuildSkillIndex(candidates []Candidate) []SkillGroup {
	groups := make(map[string]*SkillGroup)
	order := make([]string, 0)

	for _, candidate := range candidates {
		for _, skill := range candidate.Skills {
			key := NormalizeSkill(skill)
			group, ok := groups[key]
			if !ok {
				group = &SkillGroup{Skill: skill}
				groups[key] = group
				order = append(order, key)
			}
			group.Candidates = append(group.Candidates, candidate)
			group.Count++
		}
	}

	result := make([]SkillGroup, 0, len(order))
	for _, key := range order {
		result = append(result, *groups[key])
	}

	coll := collate.New(language.Und)
	sort.SliceStable(result, func(i, j int) bool {
		return coll.CompareString(result[i].Skill, result[j].Skill) < 0
	})
	return result
}

// SkillVariations lists every casing/whitespace variant of target observed
// across the given candidates, in first-seen order.
func SkillVariations(candidates []Candidate, target string) []string {
	key := NormalizeSkill(target)
	seen := make(map[string]bool)
	variations := make([]string, 0)

	for _, candidate := range candidates {
		for _, skill := range candidate.Skills {
			if NormalizeSkill(skill) != key || seen[skill] {
				continue
			}
			seen[skill] = true
			variations = append(variations, skill)
		}
	}
	return variations
}

// DisplaySkill returns the original casing of target as held by the first
// matching candidate, falling back to the requested form when nobody holds
// the skill.
func DisplaySkill(candidates []Candidate, target string) string {
	key := NormalizeSkill(target)
	for _, candidate := range candidates {
		for _, skill := range candidate.Skills {
			if NormalizeSkill(skill) == key {
				return skill
			}
		}
	}
	return target
}
