package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to the OpenAI chat completions API to generate flashcards.
type Client struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// New creates a flashcard generation client. The key comes from
// configuration; an empty key is rejected here so handlers can report a
// clean error instead of a failed upstream call.
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	return &Client{
		apiKey:      apiKey,
		apiURL:      "https://api.openai.com/v1/chat/completions",
		model:       "gpt-4o-mini",
		maxTokens:   1500,
		temperature: 0.7,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Message is one message in the chat conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request body for the completions endpoint
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse is the response body from the completions endpoint
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GeneratedCard is one question/answer pair produced by the model.
type GeneratedCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateFlashcards asks the model for count cards about topic at the
// given difficulty and parses the strict-JSON reply.
func (c *Client) GenerateFlashcards(topic string, count int, difficulty string) ([]GeneratedCard, error) {
	if count < 1 {
		count = 5
	}
	if count > 20 {
		count = 20
	}

	prompt := fmt.Sprintf(
		"Generate %d study flashcards about '%s' at %s difficulty. "+
			"Reply with a JSON array only, no prose, each element an object "+
			"with the keys \"question\" and \"answer\".",
		count, topic, difficulty,
	)

	messages := []Message{
		{Role: "system", Content: "You are a study assistant that writes concise, accurate flashcards."},
		{Role: "user", Content: prompt},
	}

	request := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	cards, err := parseCards(response.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// parseCards tolerates the model wrapping its JSON in a code fence.
func parseCards(content string) ([]GeneratedCard, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var cards []GeneratedCard
	if err := json.Unmarshal([]byte(content), &cards); err != nil {
		return nil, fmt.Errorf("could not parse generated flashcards: %w", err)
	}

	out := cards[:0]
	for _, card := range cards {
		if card.Question != "" && card.Answer != "" {
			out = append(out, card)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("model returned no usable flashcards")
	}
	return out, nil
}
