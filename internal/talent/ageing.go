package talent

import "time"

const demandDateLayout = "2006-01-02"

// AgeingWeeks returns the whole weeks elapsed between createdDate and now,
// clamped at 0 so future-dated demands never age negatively. Missing or
// unparsable dates age 0 weeks.
func AgeingWeeks(createdDate string, now time.Time) int {
	if createdDate == "" {
		return 0
	}

	created, err := time.Parse(demandDateLayout, createdDate)
	if err != nil {
		created, err = time.Parse(time.RFC3339, createdDate)
		if err != nil {
			return 0
		}
	}

	days := int(now.Sub(created).Hours() / 24)
	weeks := days / 7
	if weeks < 0 {
		return 0
	}
	return weeks
}
