// File: services/intelligence/dates.go
package ai

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"miles/models"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ParseRelativeDate converts expressions like "tomorrow", "next week" or a
// bare month name into an ISO date. Inputs already in ISO form pass
// through. The second return is false when nothing could be parsed.
func ParseRelativeDate(raw string, now time.Time) (string, bool) {
	if raw == "" || raw == "null" || raw == "None" {
		return "", false
	}
	if isoDateRe.MatchString(raw) {
		return raw[:10], true
	}

	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case lower == "today":
		return now.Format("2006-01-02"), true
	case lower == "tomorrow":
		return now.AddDate(0, 0, 1).Format("2006-01-02"), true
	case lower == "day after tomorrow":
		return now.AddDate(0, 0, 2).Format("2006-01-02"), true
	case strings.Contains(lower, "next week"):
		return now.AddDate(0, 0, 7).Format("2006-01-02"), true
	case strings.Contains(lower, "next month"):
		return now.AddDate(0, 1, 0).Format("2006-01-02"), true
	case strings.Contains(lower, "this week"):
		return now.AddDate(0, 0, 3).Format("2006-01-02"), true
	case strings.Contains(lower, "this month"):
		return time.Date(now.Year(), now.Month(), 15, 0, 0, 0, 0, now.Location()).Format("2006-01-02"), true
	}

	for name, month := range monthNumbers {
		if strings.Contains(lower, name) {
			year := now.Year()
			if month < now.Month() {
				year++
			}
			return fmt.Sprintf("%04d-%02d-01", year, month), true
		}
	}

	return "", false
}

// dateParams lists the intent parameters that may hold date expressions.
var dateParams = []string{"departure_date", "return_date", "check_in", "check_out"}

// postProcessDates rewrites relative dates in place and fills the
// documented defaults: flights default to departing 30 days out, hotels to
// a check-in 7 days out with a 3-night stay.
func postProcessDates(intent *models.Intent, now time.Time) {
	for _, name := range dateParams {
		if raw, ok := intent.Params[name]; ok {
			if parsed, ok := ParseRelativeDate(raw, now); ok {
				intent.Params[name] = parsed
			} else {
				delete(intent.Params, name)
			}
		}
	}

	switch intent.Type {
	case models.IntentFlightSearch:
		if intent.Params["departure_date"] == "" {
			intent.Params["departure_date"] = now.AddDate(0, 0, 30).Format("2006-01-02")
		}
	case models.IntentHotelSearch:
		if intent.Params["check_in"] == "" {
			intent.Params["check_in"] = now.AddDate(0, 0, 7).Format("2006-01-02")
		}
		if intent.Params["check_out"] == "" {
			checkIn, err := time.Parse("2006-01-02", intent.Params["check_in"])
			if err != nil {
				checkIn = now.AddDate(0, 0, 7)
			}
			intent.Params["check_out"] = checkIn.AddDate(0, 0, 3).Format("2006-01-02")
		}
	}
}
