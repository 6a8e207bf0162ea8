package statgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/constants"
)

// ErrNoAPIKey is returned by NewClient when the Groq key is missing; the
// caller should fall back to deterministic generation instead of failing.
var ErrNoAPIKey = errors.New("groq api key is not configured")

const defaultPromptTemplate = `You are the creature designer for a drawing battle game. A player drew a picture that was classified as "{{label}}". Invent a battle creature for it and answer with a single JSON object, no prose, with keys: name (string), nature (one of normal, fire, water, electric, earth, air, ice, poison, metal, dark, light), hp, attack, defense, speed (integers), and moves (array of exactly 4 objects with keys: name, kind (damage, buff, debuff, stun or heal), power, magnitude, chance, accuracy, stat (attack, defense or speed), duration_turns, description).`

const systemPrompt = "You design balanced creatures for a two-player battle game. Always answer with raw JSON only."

// Client talks to the Groq chat completions API to obtain creature stat
// proposals. Responses are advisory; the validator owns the final say.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	promptTemplate string
}

// NewClient builds a Groq client. promptTemplate may be empty to use the
// built-in prompt; the token {{label}} is substituted per request.
func NewClient(apiKey, promptTemplate string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	if strings.TrimSpace(promptTemplate) == "" {
		promptTemplate = defaultPromptTemplate
	}
	return &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		apiKey:         apiKey,
		baseURL:        constants.GroqBaseURL,
		promptTemplate: promptTemplate,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ProposeStats asks the model for a creature proposal for the given label
// and returns the raw response text. Callers parse it with ParseProposal.
func (c *Client) ProposeStats(ctx context.Context, label string) (string, error) {
	prompt := strings.ReplaceAll(c.promptTemplate, "{{label}}", label)
	body, err := json.Marshal(chatRequest{
		Model: constants.GroqChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: constants.GroqTemperature,
		MaxTokens:   constants.GroqMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := c.baseURL + constants.GroqChatCompletionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read groq response: %w", err)
	}
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode groq response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("groq error (%d): %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("groq response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
