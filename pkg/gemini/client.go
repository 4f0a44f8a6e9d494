package gemini

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// Client performs text generation against the Gemini API.
type Client interface {
	GenerateText(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// GenerateRequest is a single-turn generation request.
type GenerateRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int32
	Temperature *float32
}

// GenerateResult is the generated output.
type GenerateResult struct {
	Text  string
	Model string
}

// sdkClient implements Client using the official genai SDK.
type sdkClient struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. Model may be empty to use the default.
func NewClient(ctx context.Context, apiKey, model string) (Client, error) {
	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	if model == "" {
		model = defaultModel
	}
	return &sdkClient{client: cl, model: model}, nil
}

func (c *sdkClient) GenerateText(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = req.MaxTokens
	}
	if req.Temperature != nil {
		cfg.Temperature = req.Temperature
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, []*genai.Content{
		{Parts: []*genai.Part{{Text: req.Prompt}}},
	}, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: generate content")
	}

	text := extractText(resp)
	if text == "" {
		return nil, eris.New("gemini: empty response")
	}

	return &GenerateResult{Text: text, Model: model}, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, p := range candidate.Content.Parts {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "")
}
