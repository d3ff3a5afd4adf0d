// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient wraps two model handles over one connection: a chat model
// for user-facing replies and a JSON-mode model for structured extraction.
type GeminiClient struct {
	client     *genai.Client
	chat       *genai.GenerativeModel
	structured *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	chat := client.GenerativeModel("gemini-2.0-flash")
	chat.SetTemperature(0.7)

	// Force JSON output for intent extraction; low temperature keeps the
	// parsing consistent.
	structured := client.GenerativeModel("gemini-2.0-flash")
	structured.ResponseMIMEType = "application/json"
	structured.SetTemperature(0.1)

	return &GeminiClient{client: client, chat: chat, structured: structured}, nil
}

// Close cleans up the underlying client connection.
func (g *GeminiClient) Close() {
	g.client.Close()
}

// GenerateContent produces a conversational reply for the given prompt.
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, g.chat, prompt)
}

// GenerateStructured produces a JSON document for the given prompt.
func (g *GeminiClient) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	out, err := g.generate(ctx, g.structured, prompt)
	if err != nil {
		return "", err
	}
	return cleanJSONString(out), nil
}

func (g *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// cleanJSONString removes markdown code fences if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
