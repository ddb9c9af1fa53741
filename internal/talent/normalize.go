package talent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeSkill 生成技能的比较键：小写并裁剪首尾空白。
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// DecodeSkills turns a raw skills column value into a skill sequence. The
// value may be a JSON array, a JSON-encoded string, or plain text; strings
// that fail to parse as JSON are split on commas with each segment trimmed.
// Empty segments are kept as-is.
func DecodeSkills(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var values []any
	if err := json.Unmarshal(raw, &values); err == nil {
		return stringifySkills(values)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return SplitSkills(s)
	}

	// 列里存的既不是 JSON 数组也不是 JSON 字符串：按原始文本切分。
	return SplitSkills(string(raw))
}

// SplitSkills 先尝试把字符串按 JSON 数组解析，失败则按逗号切分。
func SplitSkills(s string) []string {
	if s == "" {
		return []string{}
	}

	var values []any
	if err := json.Unmarshal([]byte(s), &values); err == nil {
		return stringifySkills(values)
	}

	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skills = append(skills, strings.TrimSpace(part))
	}
	return skills
}

// EncodeSkills 把技能序列编码回 JSON 数组（存储形态）。
func EncodeSkills(skills []string) []byte {
	if skills == nil {
		skills = []string{}
	}
	encoded, err := json.Marshal(skills)
	if err != nil {
		return []byte("[]")
	}
	return encoded
}

func stringifySkills(values []any) []string {
	skills := make([]string, 0, len(values))
	for _, value := range values {
		switch v := value.(type) {
		case string:
			skills = append(skills, v)
		case nil:
			skills = append(skills, "")
		default:
			skills = append(skills, fmt.Sprint(v))
		}
	}
	return skills
}

// HasSkill reports whether the candidate holds target, compared by
// normalized key.
func (c Candidate) HasSkill(target string) bool {
	key := NormalizeSkill(target)
	for _, skill := range c.Skills {
		if NormalizeSkill(skill) == key {
			return true
		}
	}
	return false
}
