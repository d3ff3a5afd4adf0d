// File: miles/handlers/chat.go
package handlers

import (
	"net/http"
	"time"

	"miles/models"
	ai "miles/services/intelligence"
	"miles/services/travel"
	"miles/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatHandler drives a chat turn: detect intent, resolve travel data,
// build a dashboard payload and compose the assistant reply.
type ChatHandler struct {
	Detector ai.IntentAnalyzer
	Composer ai.ReplyComposer
	Travel   travel.TravelService
	Sessions ai.SessionStore
}

func NewChatHandler(detector ai.IntentAnalyzer, composer ai.ReplyComposer, ts travel.TravelService, sessions ai.SessionStore) *ChatHandler {
	return &ChatHandler{
		Detector: detector,
		Composer: composer,
		Travel:   ts,
		Sessions: sessions,
	}
}

// HandleChat processes a conversational turn.
func (ch *ChatHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if len(req.Messages) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "messages must not be empty")
		return
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != "user" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "last message must be from the user")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	ctx := c.Request.Context()

	history, err := ch.Sessions.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("Failed to load session history", zap.String("session", sessionID), zap.Error(err))
		history = []models.ChatMessage{}
	}

	intent := ch.Detector.Analyze(ctx, last.Content, history)
	data := ch.Travel.Resolve(ctx, sessionID, intent)

	dashboard := ch.buildDashboard(intent, data, last.Content)

	reply, err := ch.Composer.ComposeReply(ctx, req.Messages, data, dashboard, req.Context)
	if err != nil {
		logger.Error("Reply composition failed", zap.String("session", sessionID), zap.Error(err))
		reply = ai.FallbackReply
	}

	history = append(history,
		last,
		models.ChatMessage{Role: "assistant", Content: reply, Timestamp: time.Now().UTC().Format(time.RFC3339)},
	)
	if err := ch.Sessions.Set(ctx, sessionID, history); err != nil {
		logger.Warn("Failed to persist session history", zap.String("session", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		Reply:      reply,
		SessionID:  sessionID,
		TravelData: data,
		Dashboard:  dashboard,
	})
}

// buildDashboard prefers live flight offers and falls back to synthetic
// data when the utterance reads like a flight query but no real offers
// came back.
func (ch *ChatHandler) buildDashboard(intent *models.Intent, data *models.TravelData, utterance string) *models.FlightDashboard {
	if intent.Type == models.IntentFlightSearch && data != nil && data.Error == "" {
		if res, ok := data.Data.(*models.FlightResults); ok && len(res.Flights) > 0 {
			return travel.DashboardFromResults(
				res,
				intent.Params["origin"],
				intent.Params["destination"],
				intent.Params["departure_date"],
			)
		}
	}
	return ch.Travel.FlightFallback(utterance, time.Now())
}

// ClearSession drops cached travel data and stored history for a session.
func (ch *ChatHandler) ClearSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "session id is required")
		return
	}

	ch.Travel.ClearSession(sessionID)
	if err := ch.Sessions.Clear(c.Request.Context(), sessionID); err != nil {
		utils.GetLogger().Warn("Failed to clear session history", zap.String("session", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared", "session_id": sessionID})
}
