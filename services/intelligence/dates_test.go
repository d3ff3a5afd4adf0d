// File: services/intelligence/dates_test.go
package ai

import (
	"testing"
	"time"

	"miles/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func TestParseRelativeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-10-01", "2026-10-01"},
		{"2026-10-01T08:00:00", "2026-10-01"},
		{"today", "2026-09-01"},
		{"tomorrow", "2026-09-02"},
		{"day after tomorrow", "2026-09-03"},
		{"next week", "2026-09-08"},
		{"next month", "2026-10-01"},
		{"this month", "2026-09-15"},
		{"in december", "2026-12-01"},
		{"sometime in March", "2027-03-01"},
	}
	for _, tc := range cases {
		got, ok := ParseRelativeDate(tc.in, fixedNow)
		require.True(t, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseRelativeDateUnparseable(t *testing.T) {
	for _, in := range []string{"", "null", "None", "whenever"} {
		_, ok := ParseRelativeDate(in, fixedNow)
		assert.False(t, ok, "input %q", in)
	}
}

func TestPostProcessDatesRewritesRelative(t *testing.T) {
	intent := &models.Intent{
		Type: models.IntentFlightSearch,
		Params: map[string]string{
			"departure_date": "tomorrow",
			"return_date":    "gibberish",
		},
	}
	postProcessDates(intent, fixedNow)

	assert.Equal(t, "2026-09-02", intent.Params["departure_date"])
	_, present := intent.Params["return_date"]
	assert.False(t, present, "unparseable dates are dropped")
}

func TestPostProcessDatesFlightDefault(t *testing.T) {
	intent := &models.Intent{
		Type:   models.IntentFlightSearch,
		Params: map[string]string{"origin": "JFK", "destination": "LAX"},
	}
	postProcessDates(intent, fixedNow)
	assert.Equal(t, "2026-10-01", intent.Params["departure_date"])
}

func TestPostProcessDatesHotelDefaults(t *testing.T) {
	intent := &models.Intent{
		Type:   models.IntentHotelSearch,
		Params: map[string]string{"destination": "PAR"},
	}
	postProcessDates(intent, fixedNow)
	assert.Equal(t, "2026-09-08", intent.Params["check_in"])
	assert.Equal(t, "2026-09-11", intent.Params["check_out"])
}

func TestPostProcessDatesHotelCheckoutFollowsCheckin(t *testing.T) {
	intent := &models.Intent{
		Type:   models.IntentHotelSearch,
		Params: map[string]string{"check_in": "2026-12-20"},
	}
	postProcessDates(intent, fixedNow)
	assert.Equal(t, "2026-12-23", intent.Params["check_out"])
}
