package models

// Travel intent categories produced by the intent detector.
const (
	IntentFlightSearch      = "flight_search"
	IntentHotelSearch       = "hotel_search"
	IntentActivitySearch    = "activity_search"
	IntentFlightInspiration = "flight_inspiration"
	IntentLocationSearch    = "location_search"
	IntentGeneral           = "general"
)

// Intent is the structured classification of a single user utterance.
// Params are normalized to strings so cache keys stay deterministic
// regardless of how the model typed the values.
type Intent struct {
	Type              string            `json:"type"`
	Confidence        float64           `json:"confidence"`
	Params            map[string]string `json:"params"`
	HasRequiredParams bool              `json:"has_required_params"`
}

// RequiredIntentParams lists the parameters each intent type must carry
// before a provider call is attempted. activity_search is special-cased:
// a destination can stand in for coordinates at detection time.
var RequiredIntentParams = map[string][]string{
	IntentFlightSearch:      {"origin", "destination", "departure_date"},
	IntentHotelSearch:       {"destination", "check_in", "check_out"},
	IntentActivitySearch:    {"latitude", "longitude"},
	IntentFlightInspiration: {"origin"},
	IntentLocationSearch:    {"keyword"},
}

// HasParams reports whether every named parameter is present and non-empty.
func (i *Intent) HasParams(names ...string) bool {
	for _, name := range names {
		if i.Params[name] == "" {
			return false
		}
	}
	return true
}
