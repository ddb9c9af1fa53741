package talent

import (
	"sort"
	"strings"
)

// MatchMode 控制多技能筛选的组合方式。
type MatchMode string

const (
	MatchAny MatchMode = "ANY"
	MatchAll MatchMode = "ALL"
)

// ParseMatchMode maps request input to a mode. Anything other than the
// literal "ALL" means ANY.
func ParseMatchMode(s string) MatchMode {
	if s == string(MatchAll) {
		return MatchAll
	}
	return MatchAny
}

// Filter 描述一次组合筛选；零值字段表示对应维度不参与过滤。
// 激活的维度之间按逻辑与组合。
type Filter struct {
	Skill         string    // 单技能，归一化后精确匹配
	Query         string    // 技能子串，归一化后包含匹配
	Skills        []string  // 多技能
	Mode          MatchMode // 多技能组合方式，默认 ANY
	ExperienceMin *int
	ExperienceMax *int
	SalaryMin     *int
	SalaryMax     *int
	Location      string // 城市（location 首个逗号前的片段），大小写不敏感精确匹配
}

// Apply returns the candidates passing every active dimension, preserving
// input order. Candidates missing a field referenced by an active dimension
// are excluded, never an error; an empty result is a valid result.
func (f Filter) Apply(candidates []Candidate) []Candidate {
	result := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if f.matches(candidate) {
			result = append(result, candidate)
		}
	}
	return result
}

func (f Filter) matches(c Candidate) bool {
	if f.Skill != "" && !c.HasSkill(f.Skill) {
		return false
	}
	if f.Query != "" && !hasSkillSubstring(c, f.Query) {
		return false
	}
	if len(f.Skills) > 0 && !matchesSkillSet(c, f.Skills, f.Mode) {
		return false
	}
	if f.ExperienceMin != nil && ParseExperience(c.Experience) < *f.ExperienceMin {
		return false
	}
	if f.ExperienceMax != nil && ParseExperience(c.Experience) > *f.ExperienceMax {
		return false
	}
	if f.SalaryMin != nil && ParseSalary(c.Salary) < *f.SalaryMin {
		return false
	}
	if f.SalaryMax != nil && ParseSalary(c.Salary) > *f.SalaryMax {
		return false
	}
	if f.Location != "" {
		if c.Location == "" {
			return false
		}
		if !strings.EqualFold(CityOf(c.Location), f.Location) {
			return false
		}
	}
	return true
}

// CityOf 取 location 首个逗号前的片段并裁剪空白（"Bangalore, India" -> "Bangalore"）。
func CityOf(location string) string {
	return strings.TrimSpace(strings.SplitN(location, ",", 2)[0])
}

func hasSkillSubstring(c Candidate, query string) bool {
	q := NormalizeSkill(query)
	for _, skill := range c.Skills {
		if strings.Contains(NormalizeSkill(skill), q) {
			return true
		}
	}
	return false
}

func matchesSkillSet(c Candidate, targets []string, mode MatchMode) bool {
	keys := make(map[string]bool, len(c.Skills))
	for _, skill := range c.Skills {
		keys[NormalizeSkill(skill)] = true
	}

	if mode == MatchAll {
		for _, target := range targets {
			if !keys[NormalizeSkill(target)] {
				return false
			}
		}
		return true
	}
	for _, target := range targets {
		if keys[NormalizeSkill(target)] {
			return true
		}
	}
	return false
}

// RelatedSkill 表示结果集中与目标技能共现的其他技能。
type RelatedSkill struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// RelatedSkills lists every skill other than target held by candidates in
// the result set, counted per occurrence and sorted descending by count.
// Ties keep first-encountered order.
func RelatedSkills(candidates []Candidate, target string) []RelatedSkill {
	targetKey := NormalizeSkill(target)
	entries := make(map[string]*RelatedSkill)
	order := make([]string, 0)

	for _, candidate := range candidates {
		for _, skill := range candidate.Skills {
			key := NormalizeSkill(skill)
			if key == targetKey {
				continue
			}
			entry, ok := entries[key]
			if !ok {
				entry = &RelatedSkill{Skill: skill}
				entries[key] = entry
				order = append(order, key)
			}
			entry.Count++
		}
	}

	result := make([]RelatedSkill, 0, len(order))
	for _, key := range order {
		result = append(result, *entries[key])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// MatchingSkills returns the distinct original-case skill strings containing
// the normalized query, across the given candidates, in first-seen order.
func MatchingSkills(candidates []Candidate, query string) []string {
	q := NormalizeSkill(query)
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, candidate := range candidates {
		for _, skill := range candidate.Skills {
			if !strings.Contains(NormalizeSkill(skill), q) || seen[skill] {
				continue
			}
			seen[skill] = true
			result = append(result, skill)
		}
	}
	return result
}

// SkillCount pairs a requested skill with its normalized key and the number
// of matches in a filtered set.
type SkillCount struct {
	Skill      string `json:"skill"`
	Normalized string `json:"normalized"`
	Count      int    `json:"count"`
}

// GroupBySkill splits a filtered result set per originally requested skill,
// preserving the caller's casing and array positions.
func GroupBySkill(candidates []Candidate, requested []string) (map[string][]Candidate, []SkillCount) {
	groups := make(map[string][]Candidate, len(requested))
	counts := make([]SkillCount, 0, len(requested))

	for _, skill := range requested {
		matched := make([]Candidate, 0)
		for _, candidate := range candidates {
			if candidate.HasSkill(skill) {
				matched = append(matched, candidate)
			}
		}
		groups[skill] = matched
		counts = append(counts, SkillCount{
			Skill:      skill,
			Normalized: NormalizeSkill(skill),
			Count:      len(matched),
		})
	}
	return groups, counts
}
