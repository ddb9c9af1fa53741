package talent

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var digitRun = regexp.MustCompile(`\d+`)

// ParseExperience extracts the leading integer of a free-text experience
// value ("5 years" -> 5). Values without a numeric prefix parse as 0.
func ParseExperience(s string) int {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

// ParseSalary extracts the first run of digits embedded anywhere in a salary
// string ("₹18 LPA" -> 18). No digits -> 0.
func ParseSalary(s string) int {
	match := digitRun.FindString(s)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// AverageExperience 返回平均工作年限（保留一位小数），空集合为 0。
func AverageExperience(candidates []Candidate) float64 {
	if len(candidates) == 0 {
		return 0
	}
	total := 0
	for _, candidate := range candidates {
		total += ParseExperience(candidate.Experience)
	}
	avg := float64(total) / float64(len(candidates))
	return math.Round(avg*10) / 10
}

// LocationCount 城市出现次数。
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// CommonLocations tallies the city segment of each candidate's location and
// returns the top 5 by descending count, ties in first-encountered order.
// Candidates without a location are skipped.
func CommonLocations(candidates []Candidate) []LocationCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, candidate := range candidates {
		if candidate.Location == "" {
			continue
		}
		city := CityOf(candidate.Location)
		if _, ok := counts[city]; !ok {
			order = append(order, city)
		}
		counts[city]++
	}

	result := make([]LocationCount, 0, len(order))
	for _, city := range order {
		result = append(result, LocationCount{Location: city, Count: counts[city]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > 5 {
		result = result[:5]
	}
	return result
}

// VisaStatusCount 签证状态出现次数。
type VisaStatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// VisaStatusDistribution tallies candidates by exact visaStatus value,
// sorted descending by count. Empty values are skipped.
func VisaStatusDistribution(candidates []Candidate) []VisaStatusCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, candidate := range candidates {
		if candidate.VisaStatus == "" {
			continue
		}
		if _, ok := counts[candidate.VisaStatus]; !ok {
			order = append(order, candidate.VisaStatus)
		}
		counts[candidate.VisaStatus]++
	}

	result := make([]VisaStatusCount, 0, len(order))
	for _, status := range order {
		result = append(result, VisaStatusCount{Status: status, Count: counts[status]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// ExperienceDistribution 固定的工作年限分桶。
type ExperienceDistribution struct {
	Junior int `json:"0-2 years"`
	Mid    int `json:"3-5 years"`
	Senior int `json:"6-10 years"`
	Expert int `json:"10+ years"`
}

// ExperienceBuckets counts candidates into four exclusive buckets over the
// parsed experience. Unparsable values count as 0 and land in "0-2 years",
// so the bucket counts always sum to len(candidates).
func ExperienceBuckets(candidates []Candidate) ExperienceDistribution {
	var dist ExperienceDistribution
	for _, candidate := range candidates {
		switch exp := ParseExperience(candidate.Experience); {
		case exp <= 2:
			dist.Junior++
		case exp <= 5:
			dist.Mid++
		case exp <= 10:
			dist.Senior++
		default:
			dist.Expert++
		}
	}
	return dist
}

// SkillPercentage formats count out of total as a percentage string with two
// decimals ("25.00%"). A zero total yields "0%".
func SkillPercentage(count, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(count)/float64(total)*100)
}

// AvailableCount 统计状态恰为 "Available" 的候选人数。
func AvailableCount(candidates []Candidate) int {
	count := 0
	for _, candidate := range candidates {
		if candidate.Status == "Available" {
			count++
		}
	}
	return count
}
