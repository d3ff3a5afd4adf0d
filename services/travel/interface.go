package travel

import (
	"context"
	"time"

	"miles/models"
)

// TravelService resolves classified intents into provider data, caching
// results per session, and synthesizes flight dashboards when the provider
// path cannot serve a flight-looking utterance.
type TravelService interface {
	// Resolve returns nil when the intent is general or too uncertain to
	// act on. When the intent looked travel-related but could not be
	// served, the returned TravelData carries a descriptive Error instead.
	Resolve(ctx context.Context, sessionID string, intent *models.Intent) *models.TravelData

	// FlightFallback runs the keyword trigger path on the raw utterance,
	// bypassing intent classification. It returns nil unless the utterance
	// matches the flight keyword set.
	FlightFallback(utterance string, now time.Time) *models.FlightDashboard

	// ClearSession drops all cached results for a session.
	ClearSession(sessionID string)
}
