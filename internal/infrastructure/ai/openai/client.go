// Package openai provides the OpenAI-backed grocery list enrichment
// client. The model is asked to categorize and tidy a merged list; the
// consolidation engine validates everything that comes back.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/infrastructure/config"
	"github.com/kitchensage/v2/internal/ports/outbound"
)

// Client implements the enrichment service using the OpenAI chat API
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a new OpenAI enrichment client
func NewClient(cfg config.EnrichmentConfig, logger *zap.Logger) outbound.EnrichmentService {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.Burst),
		logger:  logger.Named("enrichment"),
	}
}

// OpenAI API structures
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
	Usage   usage    `json:"usage"`
}

type choice struct {
	Message      message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Wire form of the enrichment exchange
type enrichmentItem struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Notes        string  `json:"notes,omitempty"`
	Category     string  `json:"category,omitempty"`
	IngredientID string  `json:"ingredient_id,omitempty"`
}

type enrichmentResponse struct {
	Items []enrichmentItem `json:"items"`
}

const systemPrompt = `You are a grocery list assistant. You receive a merged shopping list as a JSON array. Clean it up: assign each item a store category (produce, dairy, meat, seafood, bakery, pantry, frozen, beverages, other), merge duplicate entries that clearly refer to the same ingredient in the same unit, and drop items that are not purchasable groceries (for example plain water or ice).

Rules:
- Never add items that are not on the input list.
- Never change units.
- Quantities must stay positive.
- Keep the ingredient_id of each item unchanged when present.

CRITICAL: Respond with ONLY a valid JSON object in this exact format, no explanatory text or markdown:
{"items": [{"name": "Flour", "quantity": 3, "unit": "cup", "notes": "", "category": "pantry"}]}`

// EnrichItems asks the model to categorize and tidy the merged list.
// Any transport, parse, or shape problem is returned as an error; the
// caller owns the deterministic fallback.
func (c *Client) EnrichItems(ctx context.Context, items []grocery.ConsolidatedItem) ([]grocery.ConsolidatedItem, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("enrichment rate limit wait: %w", err)
	}

	payload := make([]enrichmentItem, 0, len(items))
	for _, item := range items {
		wire := enrichmentItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Notes:    item.Notes,
		}
		if item.IngredientID != uuid.Nil {
			wire.IngredientID = item.IngredientID.String()
		}
		payload = append(payload, wire)
	}
	userPrompt, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal enrichment input: %w", err)
	}

	content, err := c.callChatCompletions(ctx, string(userPrompt))
	if err != nil {
		return nil, err
	}

	return parseEnrichmentResponse(content)
}

// callChatCompletions makes the API call and returns the message content
func (c *Client) callChatCompletions(ctx context.Context, userPrompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
		MaxTokens:   1500,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	c.logger.Debug("Enrichment call succeeded",
		zap.Int("prompt_tokens", chatResp.Usage.PromptTokens),
		zap.Int("completion_tokens", chatResp.Usage.CompletionTokens),
	)

	return chatResp.Choices[0].Message.Content, nil
}

// parseEnrichmentResponse extracts the items array from the model
// output. Models sometimes wrap the JSON in prose or markdown fences,
// so the parser cuts from the first brace to the last.
func parseEnrichmentResponse(content string) ([]grocery.ConsolidatedItem, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var parsed enrichmentResponse
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse enrichment response: %w", err)
	}

	items := make([]grocery.ConsolidatedItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		// Malformed ids decode to uuid.Nil; the caller restores identity
		// from its own input anyway.
		ingredientID, _ := uuid.Parse(item.IngredientID)
		items = append(items, grocery.ConsolidatedItem{
			IngredientID: ingredientID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			Notes:        item.Notes,
			Category:     item.Category,
		})
	}
	return items, nil
}
