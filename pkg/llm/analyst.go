// Package llm turns ranked scan output into a product-opportunity analysis
// using an OpenAI-compatible chat completion API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/painradar/painradar/pkg/config"
	"github.com/painradar/painradar/pkg/domain"
)

// Analyst produces a written analysis of the top ranked opportunities
type Analyst struct {
	client *openai.Client
	cfg    config.AnalystConfig
}

// NewAnalyst creates a new opportunity analyst
func NewAnalyst(cfg config.AnalystConfig) *Analyst {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &Analyst{client: openai.NewClientWithConfig(clientConfig), cfg: cfg}
}

const systemPrompt = `You are a SaaS opportunity analyst. Analyze the following pain points found on public discussion forums and provide:
1. Top 3-5 most promising SaaS ideas based on these pain points
2. Market size potential (small/medium/large)
3. Competition level (low/medium/high based on your knowledge)
4. Quick MVP suggestion for the top opportunity

Be specific, actionable, and entrepreneurial. Format with markdown.`

// analysisItem is the compact opportunity view sent to the model
type analysisItem struct {
	Title      string   `json:"title"`
	Text       string   `json:"text,omitempty"`
	Signals    []string `json:"pain_signals"`
	Industries []string `json:"industries"`
	Score      float64  `json:"score"`
	URL        string   `json:"url"`
}

// Analyze summarizes the given opportunities into a product-idea analysis.
// At most 15 opportunities are submitted, more adds noise without insight.
func (a *Analyst) Analyze(ctx context.Context, opps []domain.Opportunity) (string, error) {
	if len(opps) == 0 {
		return "", fmt.Errorf("no opportunities to analyze")
	}
	if len(opps) > 15 {
		opps = opps[:15]
	}

	items := make([]analysisItem, len(opps))
	for i, opp := range opps {
		items[i] = analysisItem{
			Title:      opp.Title,
			Text:       truncate(opp.TextSnippet, 300),
			Signals:    opp.MatchedSignals,
			Industries: opp.MatchedIndustries,
			Score:      opp.PriorityScore,
			URL:        opp.URL,
		}
	}

	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal opportunities: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model:       a.cfg.Model,
		Temperature: float32(a.cfg.Temperature),
		MaxTokens:   a.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Analyze these opportunities:\n" + string(payload)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
