// File: services/intelligence/composer.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"miles/models"
)

// FallbackReply is returned by handlers when reply composition fails.
const FallbackReply = "I'm having trouble putting together a response right now. Could you try rephrasing that?"

// Composer turns the conversation plus resolved travel data into the
// assistant's natural-language reply.
type Composer struct {
	ai *GeminiClient
}

func NewComposer(client *GeminiClient) *Composer {
	return &Composer{ai: client}
}

func (c *Composer) ComposeReply(
	ctx context.Context,
	messages []models.ChatMessage,
	data *models.TravelData,
	dashboard *models.FlightDashboard,
	clientCtx *models.ClientContext,
) (string, error) {
	prompt := buildReplyPrompt(messages, data, dashboard, clientCtx)
	reply, err := c.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("compose reply: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func buildReplyPrompt(
	messages []models.ChatMessage,
	data *models.TravelData,
	dashboard *models.FlightDashboard,
	clientCtx *models.ClientContext,
) string {
	var b strings.Builder

	b.WriteString(`You are Miles, a friendly and knowledgeable travel assistant.
Help the user plan trips: flights, hotels, activities and destinations.
Be concise and conversational. Use the travel data below when it is present;
never invent prices or schedules that are not in the data. If the data
carries an error, acknowledge it briefly and suggest what details would help.

`)

	if clientCtx != nil {
		if clientCtx.NowISO != "" {
			fmt.Fprintf(&b, "Current time for the user: %s\n", clientCtx.NowISO)
		}
		if clientCtx.UserTZ != "" {
			fmt.Fprintf(&b, "User timezone: %s\n", clientCtx.UserTZ)
		}
		if clientCtx.UserLocale != "" {
			fmt.Fprintf(&b, "User locale: %s\n", clientCtx.UserLocale)
		}
	}

	if data != nil {
		if encoded, err := json.Marshal(data); err == nil {
			fmt.Fprintf(&b, "\nTravel data (%s):\n%s\n", data.QueryType, encoded)
		}
	}
	if dashboard != nil && !dashboard.HasRealData {
		b.WriteString("\nNote: the flight dashboard shown to the user contains illustrative sample data, not live prices. Make that clear if you reference it.\n")
	}

	b.WriteString("\nConversation:\n")
	for _, msg := range messages {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	b.WriteString("\nMiles:")

	return b.String()
}
