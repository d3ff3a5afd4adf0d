package travel

import (
	"regexp"
	"strings"
	"time"
)

// Best-effort route and date extraction for utterances that look like
// flight queries but bypassed intent classification. Extraction never
// fails: anything that cannot be parsed falls back to a documented default.

// Defaults used when no route can be extracted.
const (
	DefaultOrigin      = "New York"
	DefaultDestination = "Los Angeles"
)

var flightQueryKeywords = []string{
	"flight", "flights", "fly", "flying", "airfare", "plane ticket",
	"airline", "airplane", "cheapest way to get", "price to fly",
	"cost of flying", "ticket price", "ticket prices",
}

// IsFlightQuery reports whether the raw utterance matches the broad flight
// keyword set that triggers the dashboard path.
func IsFlightQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range flightQueryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var (
	fromToRe = regexp.MustCompile(`(?i)\bfrom\s+([a-z][a-z ]*?)\s+to\s+([a-z][a-z ]*?)(?:\s+(?:on|in|for|around|next|this)\b|[.,!?;]|$)`)
	xToYRe   = regexp.MustCompile(`(?i)\b([a-z][a-z ]*?)\s+to\s+([a-z][a-z ]*?)(?:\s+(?:on|in|for|around|next|this)\b|[.,!?;]|$)`)
)

// ExtractRoute pulls an origin/destination pair out of free text.
// "from X to Y" is preferred over a bare "X to Y"; if neither matches, the
// fixed default pair is returned.
func ExtractRoute(text string) (origin, destination string) {
	if m := fromToRe.FindStringSubmatch(text); m != nil {
		return cleanPlace(m[1]), cleanPlace(m[2])
	}
	if m := xToYRe.FindStringSubmatch(text); m != nil {
		origin, destination = cleanPlace(m[1]), cleanPlace(m[2])
		// A bare "X to Y" often captures lead-in words ("a flight new
		// york to la"); keep only the trailing place-like words.
		origin = lastWords(origin, 3)
		if origin != "" && destination != "" {
			return origin, destination
		}
	}
	return DefaultOrigin, DefaultDestination
}

func cleanPlace(s string) string {
	s = strings.TrimSpace(s)
	for _, stop := range []string{"a ", "an ", "the "} {
		s = strings.TrimPrefix(s, stop)
	}
	return strings.TrimSpace(s)
}

func lastWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

var (
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:\s*(?:-|to|until|through)\s*(\d{1,2})/(\d{1,2}))?\b`)
	monthDayRe  = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:\s*(?:-|to|until|through)\s*(\d{1,2}))?\b`)
)

var monthIndex = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// ExtractTravelDates pulls a departure date, and optionally a return date,
// out of free text. Supported forms are numeric "MM/DD" (single or range)
// and "Month DD" (single, or "Month DD-DD" for a range). Dates that fall
// before now are pushed into the next year. If nothing matches, departure
// defaults to 30 days from now.
func ExtractTravelDates(text string, now time.Time) (departure, returnDate string) {
	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		departure = resolveDate(now, time.Month(atoi(m[1])), atoi(m[2]))
		if m[3] != "" {
			returnDate = resolveDate(now, time.Month(atoi(m[3])), atoi(m[4]))
		}
		return departure, returnDate
	}
	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		month := monthIndex[strings.ToLower(m[1])]
		departure = resolveDate(now, month, atoi(m[2]))
		if m[3] != "" {
			returnDate = resolveDate(now, month, atoi(m[3]))
		}
		return departure, returnDate
	}
	return now.AddDate(0, 0, 30).Format("2006-01-02"), ""
}

// resolveDate builds an ISO date in the current year, rolling into the next
// year when the date has already passed. Out-of-range values fall back to
// the 30-day default.
func resolveDate(now time.Time, month time.Month, day int) string {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return now.AddDate(0, 0, 30).Format("2006-01-02")
	}
	candidate := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if candidate.Before(now.Truncate(24 * time.Hour)) {
		candidate = candidate.AddDate(1, 0, 0)
	}
	return candidate.Format("2006-01-02")
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
