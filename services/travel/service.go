package travel

import (
	"context"
	"strconv"
	"strings"
	"time"

	"miles/models"
	"miles/services/amadeus"
	"miles/utils"

	"go.uber.org/zap"
)

// confidenceThreshold is the minimum classifier confidence for a provider
// call to be worth attempting.
const confidenceThreshold = 0.5

const missingParamsMessage = "I couldn't fetch real-time data for that. " +
	"Please retry with specific details like origin, destination and dates."

const missingCoordinatesMessage = "I need coordinates for that location to " +
	"find activities. Please mention a specific city or landmark."

// DefaultTravelService is the production implementation.
type DefaultTravelService struct {
	Amadeus amadeus.AmadeusService
	Cache   *QueryCache
}

// NewTravelService wires the orchestrator to a gateway and cache instance.
func NewTravelService(gateway amadeus.AmadeusService, cache *QueryCache) *DefaultTravelService {
	return &DefaultTravelService{Amadeus: gateway, Cache: cache}
}

// Resolve runs the resolution algorithm: gate on confidence and required
// parameters, then cache lookup, then provider call, then cache store.
// Results carrying an error are never cached.
func (s *DefaultTravelService) Resolve(ctx context.Context, sessionID string, intent *models.Intent) *models.TravelData {
	if intent == nil || intent.Type == models.IntentGeneral || intent.Confidence <= confidenceThreshold {
		return nil
	}
	if !intent.HasRequiredParams {
		return &models.TravelData{QueryType: intent.Type, Error: missingParamsMessage}
	}

	params := canonicalParams(intent)
	if value, ok := s.Cache.Get(sessionID, intent.Type, params); ok {
		utils.GetLogger().Debug("Query cache hit",
			zap.String("session", sessionID),
			zap.String("type", intent.Type))
		return &models.TravelData{QueryType: intent.Type, Data: value, FromCache: true}
	}

	data, resultErr := s.query(ctx, intent)
	if data == nil {
		if resultErr != "" {
			return &models.TravelData{QueryType: intent.Type, Error: resultErr}
		}
		return nil
	}

	if resultErr == "" {
		s.Cache.Set(sessionID, intent.Type, params, data)
	}
	return &models.TravelData{QueryType: intent.Type, Data: data, Error: resultErr}
}

// query dispatches to the matching gateway operation. The returned string
// mirrors the payload's embedded error, used to decide cacheability; a nil
// payload with a non-empty string is a validation short-circuit.
func (s *DefaultTravelService) query(ctx context.Context, intent *models.Intent) (any, string) {
	p := intent.Params

	switch intent.Type {
	case models.IntentFlightSearch:
		q := amadeus.FlightQuery{
			Origin:        ensureLocationCode(p["origin"]),
			Destination:   ensureLocationCode(p["destination"]),
			DepartureDate: p["departure_date"],
			ReturnDate:    p["return_date"],
			Adults:        paramInt(p, "adults", 1),
			MaxPrice:      paramInt(p, "max_price", 0),
		}
		res := s.Amadeus.SearchFlights(ctx, q)
		return res, res.Error

	case models.IntentHotelSearch:
		q := amadeus.HotelQuery{
			CityCode:   ensureLocationCode(p["destination"]),
			CheckIn:    p["check_in"],
			CheckOut:   p["check_out"],
			Adults:     paramInt(p, "adults", 1),
			Radius:     paramInt(p, "radius", 50),
			PriceRange: p["price_range"],
		}
		res := s.Amadeus.SearchHotels(ctx, q)
		return res, res.Error

	case models.IntentActivitySearch:
		lat, okLat := paramFloat(p, "latitude")
		lon, okLon := paramFloat(p, "longitude")
		if !okLat || !okLon {
			return nil, missingCoordinatesMessage
		}
		q := amadeus.ActivityQuery{
			Latitude:  lat,
			Longitude: lon,
			Radius:    paramInt(p, "radius", 20),
		}
		res := s.Amadeus.SearchActivities(ctx, q)
		return res, res.Error

	case models.IntentFlightInspiration:
		q := amadeus.InspirationQuery{
			Origin:        ensureLocationCode(p["origin"]),
			MaxPrice:      paramInt(p, "max_price", 0),
			DepartureDate: p["departure_date"],
		}
		res := s.Amadeus.FlightInspiration(ctx, q)
		return res, res.Error

	case models.IntentLocationSearch:
		res := s.Amadeus.SearchLocations(ctx, p["keyword"])
		return res, res.Error
	}

	return nil, ""
}

// FlightFallback implements the trigger path that bypasses classification.
func (s *DefaultTravelService) FlightFallback(utterance string, now time.Time) *models.FlightDashboard {
	if !IsFlightQuery(utterance) {
		return nil
	}
	origin, destination := ExtractRoute(utterance)
	departure, _ := ExtractTravelDates(utterance, now)
	return GenerateMockFlightData(origin, destination, departure)
}

// ClearSession drops the session's cached query results.
func (s *DefaultTravelService) ClearSession(sessionID string) {
	s.Cache.ClearSession(sessionID)
}

// canonicalParams copies the intent parameters and adds the query-type tag
// that keeps distinct query types from colliding in the cache.
func canonicalParams(intent *models.Intent) map[string]string {
	params := make(map[string]string, len(intent.Params)+1)
	for name, value := range intent.Params {
		params[name] = value
	}
	params["type"] = intent.Type
	return params
}

// ensureLocationCode normalizes a place name unless it is already a code.
// A name the dictionary does not know is passed through unchanged; the
// provider rejects it and its error payload tells the user what happened.
func ensureLocationCode(value string) string {
	if value == "" || IsLocationCode(value) {
		return value
	}
	if code, ok := NormalizeLocation(value); ok {
		return code
	}
	return value
}

func paramInt(params map[string]string, name string, def int) int {
	raw := strings.TrimSpace(params[name])
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return def
}

func paramFloat(params map[string]string, name string) (float64, bool) {
	raw := strings.TrimSpace(params[name])
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
