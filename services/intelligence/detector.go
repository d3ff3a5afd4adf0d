// File: services/intelligence/detector.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"miles/models"
	"miles/utils"

	"go.uber.org/zap"
)

// IntentDetector classifies utterances with the JSON-mode Gemini model and
// degrades to keyword matching when the model path fails.
type IntentDetector struct {
	ai *GeminiClient
}

func NewIntentDetector(client *GeminiClient) *IntentDetector {
	return &IntentDetector{ai: client}
}

// Analyze never fails; any model or parse error yields the keyword
// fallback intent so the chat flow keeps moving.
func (d *IntentDetector) Analyze(ctx context.Context, message string, history []models.ChatMessage) *models.Intent {
	logger := utils.GetLogger()

	prompt := buildDetectionPrompt(message, history)
	raw, err := d.ai.GenerateStructured(ctx, prompt)
	if err != nil {
		logger.Warn("Intent detection call failed, using keyword fallback", zap.Error(err))
		return fallbackIntent(message)
	}

	var parsed rawIntent
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		logger.Warn("Intent detection returned unparseable JSON", zap.Error(err))
		return fallbackIntent(message)
	}

	intent := validateIntent(parsed)
	postProcessDates(intent, time.Now())
	intent.HasRequiredParams = checkRequiredParams(intent)

	logger.Info("Intent detected",
		zap.String("type", intent.Type),
		zap.Float64("confidence", intent.Confidence))
	return intent
}

// rawIntent mirrors the model's JSON before normalization; param values may
// arrive as strings or numbers.
type rawIntent struct {
	Type              string         `json:"type"`
	Confidence        float64        `json:"confidence"`
	Params            map[string]any `json:"params"`
	HasRequiredParams bool           `json:"has_required_params"`
}

func buildDetectionPrompt(message string, history []models.ChatMessage) string {
	var transcript strings.Builder
	if len(history) > 0 {
		recent := history
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		transcript.WriteString("Recent conversation:\n")
		for _, msg := range recent {
			fmt.Fprintf(&transcript, "%s: %s\n", msg.Role, msg.Content)
		}
	}

	return fmt.Sprintf(`Analyze this travel-related message and extract intent and parameters.

%s
Current message: %s

Detect the travel intent and extract relevant parameters. Return ONLY a JSON object with this structure:
{
    "type": "flight_search|hotel_search|activity_search|flight_inspiration|location_search|general",
    "confidence": 0.0-1.0,
    "params": {
        "origin": "airport/city code if mentioned",
        "destination": "airport/city code if mentioned",
        "departure_date": "YYYY-MM-DD format if mentioned",
        "return_date": "YYYY-MM-DD format if mentioned",
        "adults": "number of passengers",
        "max_price": "budget limit as number",
        "check_in": "YYYY-MM-DD for hotels",
        "check_out": "YYYY-MM-DD for hotels",
        "latitude": "decimal for activities",
        "longitude": "decimal for activities",
        "keyword": "search term for locations"
    },
    "has_required_params": true/false
}

Intent types:
- flight_search: User wants to find flights between specific places
- hotel_search: User wants to find hotels in a city
- activity_search: User wants to find things to do in a location
- flight_inspiration: User wants destination suggestions from origin
- location_search: User wants to find airport/city codes
- general: General travel conversation without specific API needs

Required parameters by type:
- flight_search: origin, destination, departure_date
- hotel_search: destination (as city), check_in, check_out
- activity_search: latitude, longitude (or destination for city lookup)
- flight_inspiration: origin
- location_search: keyword

Extract dates in YYYY-MM-DD format. Convert relative dates like "tomorrow", "next week" to actual dates.
For cities/airports, try to identify IATA codes or major city names.
For prices, extract numbers only (remove currency symbols).
For coordinates, only include if explicitly mentioned.

Return only the JSON object, no other text.`, transcript.String(), message)
}

// validateIntent normalizes the model output: unknown types collapse to
// general, confidence is clamped into [0,1], and params are scrubbed of
// empty values and stringified so downstream keys stay deterministic.
func validateIntent(raw rawIntent) *models.Intent {
	intent := &models.Intent{
		Type:       raw.Type,
		Confidence: raw.Confidence,
		Params:     make(map[string]string),
	}

	switch intent.Type {
	case models.IntentFlightSearch, models.IntentHotelSearch, models.IntentActivitySearch,
		models.IntentFlightInspiration, models.IntentLocationSearch:
	default:
		intent.Type = models.IntentGeneral
	}
	if intent.Confidence < 0 {
		intent.Confidence = 0
	}
	if intent.Confidence > 1 {
		intent.Confidence = 1
	}

	for name, value := range raw.Params {
		s := stringifyParam(value)
		if s == "" || s == "null" {
			continue
		}
		intent.Params[name] = s
	}
	return intent
}

func stringifyParam(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// checkRequiredParams recomputes the readiness flag instead of trusting the
// model's claim. activity_search may substitute a destination for
// coordinates at this stage; the orchestrator insists on coordinates before
// it will call the provider.
func checkRequiredParams(intent *models.Intent) bool {
	required, ok := models.RequiredIntentParams[intent.Type]
	if !ok {
		return false
	}
	if intent.Type == models.IntentActivitySearch {
		return intent.HasParams("latitude", "longitude") || intent.HasParams("destination")
	}
	return intent.HasParams(required...)
}

// fallbackIntent is the keyword-matched intent used when detection fails.
// Confidence stays low so the orchestrator will not fire a provider call
// off a guess.
func fallbackIntent(message string) *models.Intent {
	lower := strings.ToLower(message)

	intentType := models.IntentGeneral
	confidence := 0.5
	switch {
	case containsAny(lower, "flight", "fly", "airplane", "airline"):
		intentType = models.IntentFlightSearch
		confidence = 0.3
	case containsAny(lower, "hotel", "accommodation", "stay", "room"):
		intentType = models.IntentHotelSearch
		confidence = 0.3
	case containsAny(lower, "activity", "things to do", "attraction", "tour"):
		intentType = models.IntentActivitySearch
		confidence = 0.3
	}

	return &models.Intent{
		Type:       intentType,
		Confidence: confidence,
		Params:     map[string]string{},
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
