package validation

import "time"

// AgeBucketRange defines one age bucket. MaxAge of -1 means open-ended.
type AgeBucketRange struct {
	Label  string
	MinAge int
	MaxAge int
}

// AgeBucketRanges is the single bucket boundary set used everywhere age
// grouping appears, in display order.
var AgeBucketRanges = []AgeBucketRange{
	{Label: "Under 18", MinAge: 0, MaxAge: 17},
	{Label: "18-19", MinAge: 18, MaxAge: 19},
	{Label: "20-21", MinAge: 20, MaxAge: 21},
	{Label: "22-24", MinAge: 22, MaxAge: 24},
	{Label: "25-29", MinAge: 25, MaxAge: 29},
	{Label: "30+", MinAge: 30, MaxAge: -1},
}

// AgeInYears computes whole years between dateOfBirth and now using
// 365.25-day years
func AgeInYears(dateOfBirth, now time.Time) int {
	if dateOfBirth.IsZero() || dateOfBirth.After(now) {
		return 0
	}
	return int(now.Sub(dateOfBirth).Hours() / 24 / 365.25)
}

// AgeBucket returns the bucket label for a date of birth
func AgeBucket(dateOfBirth, now time.Time) string {
	age := AgeInYears(dateOfBirth, now)
	for _, r := range AgeBucketRanges {
		if age >= r.MinAge && (r.MaxAge < 0 || age <= r.MaxAge) {
			return r.Label
		}
	}
	return AgeBucketRanges[len(AgeBucketRanges)-1].Label
}
