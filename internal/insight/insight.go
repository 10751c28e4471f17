// Package insight produces short natural-language commentary on a
// summarized price range, backed by a configurable LLM provider.
package insight

import (
	"context"
	"fmt"

	"github.com/cryptotrack/cryptotracker/internal/core"
)

// Provider defines the interface for LLM providers
type Provider interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest holds the request parameters
type ChatRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float64
}

// Message represents a chat message
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ChatResponse holds the response from the LLM
type ChatResponse struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
}

const systemPrompt = "You are a market commentator. Given price statistics " +
	"for a cryptocurrency over a date range, write a short factual paragraph " +
	"(3-4 sentences) describing the range. Do not give investment advice."

// Request describes the range to comment on.
type Request struct {
	CoinName string
	From     string
	To       string
	Points   int
	Summary  core.Summary
}

// Commentary asks the provider for a paragraph about the summarized range.
func Commentary(ctx context.Context, p Provider, req Request) (string, error) {
	prompt := fmt.Sprintf(
		"Coin: %s\nRange: %s to %s\nSamples: %d\nMaximum price: %s USD on %s\nMinimum price: %s USD on %s",
		req.CoinName,
		req.From, req.To,
		req.Points,
		core.FormatPrice(req.Summary.MaxPrice), core.FormatDate(req.Summary.MaxDate),
		core.FormatPrice(req.Summary.MinPrice), core.FormatDate(req.Summary.MinDate),
	)

	resp, err := p.Chat(ctx, ChatRequest{
		SystemPrompt: systemPrompt,
		Messages:     []Message{{Role: "user", Content: prompt}},
		MaxTokens:    512,
	})
	if err != nil {
		return "", core.WrapError(core.ErrInsightFailed, err)
	}
	return resp.Content, nil
}
