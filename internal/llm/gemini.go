package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Request describes a single round trip to the model service. Temperature is
// always zero; the pipeline needs deterministic sampling at every stage.
type Request struct {
	Prompt string

	// MaxOutputTokens caps the response length. Zero means no cap.
	MaxOutputTokens int32

	// ForceJSON asks the model for an object-shaped response.
	ForceJSON bool
}

// Client is a thin wrapper around the GenAI SDK bound to one model name.
// Constructed once at startup and shared read-only across requests.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates the model-service client. The API key may be empty, in
// which case the SDK falls back to its own environment discovery.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	cc := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	}
	if apiKey != "" {
		cc.APIKey = apiKey
		cc.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("llm: create genai client: %w", err)
	}

	return &Client{genai: client, model: model}, nil
}

// Generate sends the prompt and returns the raw response text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.ForceJSON {
		cfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: req.Prompt},
			},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("llm: empty response from model")
	}
	return text, nil
}
