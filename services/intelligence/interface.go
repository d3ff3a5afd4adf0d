// File: services/intelligence/interface.go
package ai

import (
	"context"

	"miles/models"
)

// IntentAnalyzer classifies a user utterance into a travel intent. It must
// never fail: when the model path breaks down the implementation returns a
// keyword-matched fallback intent instead.
type IntentAnalyzer interface {
	Analyze(ctx context.Context, message string, history []models.ChatMessage) *models.Intent
}

// ReplyComposer turns the conversation plus any resolved travel data into
// the assistant's reply text.
type ReplyComposer interface {
	ComposeReply(ctx context.Context, messages []models.ChatMessage, data *models.TravelData, dashboard *models.FlightDashboard, clientCtx *models.ClientContext) (string, error)
}

// SessionStore persists per-session conversation history between turns.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
	Set(ctx context.Context, sessionID string, history []models.ChatMessage) error
	Clear(ctx context.Context, sessionID string) error
}
