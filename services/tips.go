package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/xener/energy-api/models"
)

// TipContent is a generated energy-saving tip before it is persisted.
type TipContent struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"` // cooling|timing|home|ghost
	SavingsAmount float64 `json:"savingsAmount"`
	Difficulty    string  `json:"difficulty"`
}

// TipGenerator produces energy-saving tips for a user's appliance and usage
// profile. The static generator is the default; the Claude generator is used
// when an API key is configured.
type TipGenerator interface {
	GenerateTips(ctx context.Context, appliances []models.Appliance, usage []models.UsageRecord) ([]TipContent, error)
}

// NewTipGenerator picks the Claude-backed generator when ANTHROPIC_API_KEY is
// set, otherwise the canned static tips.
func NewTipGenerator() TipGenerator {
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return NewClaudeTipGenerator()
	}
	return &StaticTipGenerator{}
}

// ============================================================================
// STATIC GENERATOR - the three canned demonstration tips
// ============================================================================

type StaticTipGenerator struct{}

func (g *StaticTipGenerator) GenerateTips(ctx context.Context, appliances []models.Appliance, usage []models.UsageRecord) ([]TipContent, error) {
	return []TipContent{
		{
			Title:         "Optimize AC Temperature",
			Description:   "Set your AC to 24-26°C instead of lower temperatures. This can reduce energy consumption by 20-30%.",
			Category:      "cooling",
			SavingsAmount: 50,
			Difficulty:    "Easy",
		},
		{
			Title:         "Use Off-Peak Hours",
			Description:   "Run heavy appliances like washing machine during off-peak hours (11 PM - 6 AM) to save on electricity tariff.",
			Category:      "timing",
			SavingsAmount: 30,
			Difficulty:    "Medium",
		},
		{
			Title:         "Unplug Standby Devices",
			Description:   "Unplug electronics when not in use to eliminate phantom power consumption.",
			Category:      "ghost",
			SavingsAmount: 15,
			Difficulty:    "Easy",
		},
	}, nil
}

// ============================================================================
// CLAUDE GENERATOR - personalized tips via the Anthropic API
// ============================================================================

type ClaudeTipGenerator struct {
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model string `json:"model"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func NewClaudeTipGenerator() *ClaudeTipGenerator {
	return &ClaudeTipGenerator{
		apiKey:     os.Getenv("ANTHROPIC_API_KEY"),
		model:      "claude-3-5-sonnet-latest",
		maxTokens:  2000,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

const tipSystemPrompt = `You are an expert energy efficiency consultant. Generate practical, actionable energy-saving tips based on Indian electricity usage patterns and costs.`

func (g *ClaudeTipGenerator) GenerateTips(ctx context.Context, appliances []models.Appliance, usage []models.UsageRecord) ([]TipContent, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	applianceJSON, _ := json.Marshal(appliances)
	usageJSON, _ := json.Marshal(usage)

	prompt := fmt.Sprintf(`Based on the following appliance and usage data, generate 3 personalized energy-saving tips:

Appliances: %s
Usage Data: %s

Respond with JSON only, in this structure:
{"tips": [{"title": "...", "description": "...", "category": "cooling|timing|home|ghost", "savingsAmount": number, "difficulty": "Easy|Medium|Hard"}]}`,
		applianceJSON, usageJSON)

	raw, err := g.executeRequest(ctx, claudeRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		System:    tipSystemPrompt,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Tips []TipContent `json:"tips"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse tips response: %w", err)
	}
	if len(parsed.Tips) == 0 {
		return nil, fmt.Errorf("empty tips response")
	}
	return parsed.Tips, nil
}

func (g *ClaudeTipGenerator) executeRequest(ctx context.Context, requestBody claudeRequest) (string, error) {
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(body, &claudeResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(claudeResp.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	log.Printf("🤖 [Claude] model=%s tokens_in=%d tokens_out=%d",
		claudeResp.Model, claudeResp.Usage.InputTokens, claudeResp.Usage.OutputTokens)

	return claudeResp.Content[0].Text, nil
}

// cleanJSONResponse strips markdown code fences a model sometimes wraps
// around its JSON payload.
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
