package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// TextGenerator is the external text-generation collaborator. The core
// hands it a finished prompt and gets conversational text back; prompt
// engineering beyond that is the collaborator's problem.
type TextGenerator interface {
	Generate(prompt string) (string, error)
}

// Client talks to a chat-completions style inference API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	model      string
}

// NewClientFromEnv builds the client from AI_API_URL, AI_API_TOKEN and
// AI_MODEL.
func NewClientFromEnv() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    os.Getenv("AI_API_URL"),
		token:      os.Getenv("AI_API_TOKEN"),
		model:      os.Getenv("AI_MODEL"),
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Generate(prompt string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("AI client not configured")
	}

	payload := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("inference API returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
