package llm

import (
	"context"

	"github.com/sells-group/deepresearch-cli/pkg/anthropic"
	"github.com/sells-group/deepresearch-cli/pkg/gemini"
	"github.com/sells-group/deepresearch-cli/pkg/openai"
)

// Gemini wraps a gemini.Client as a Provider.
func Gemini(c gemini.Client) Provider {
	return geminiProvider{c: c}
}

type geminiProvider struct {
	c gemini.Client
}

func (p geminiProvider) Name() string { return "gemini" }

func (p geminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	prompt := req.Prompt
	if req.System != "" {
		// Gemini has no separate system slot in this request shape; prepend.
		prompt = req.System + "\n\n" + req.Prompt
	}

	var temp *float32
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		temp = &t
	}

	res, err := p.c.GenerateText(ctx, gemini.GenerateRequest{
		Prompt:      prompt,
		MaxTokens:   int32(req.MaxTokens),
		Temperature: temp,
	})
	if err != nil {
		return nil, err
	}
	return &Response{Text: res.Text, Provider: p.Name(), Model: res.Model}, nil
}

// OpenAI wraps an openai.Client as a Provider.
func OpenAI(c openai.Client) Provider {
	return openaiProvider{c: c}
}

type openaiProvider struct {
	c openai.Client
}

func (p openaiProvider) Name() string { return "openai" }

func (p openaiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	res, err := p.c.GenerateText(ctx, openai.GenerateRequest{
		System:      req.System,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return &Response{Text: res.Text, Provider: p.Name(), Model: res.Model}, nil
}

// Anthropic wraps an anthropic.Client as a Provider.
func Anthropic(c anthropic.Client) Provider {
	return anthropicProvider{c: c}
}

type anthropicProvider struct {
	c anthropic.Client
}

func (p anthropicProvider) Name() string { return "anthropic" }

func (p anthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	res, err := p.c.GenerateText(ctx, anthropic.GenerateRequest{
		System:      req.System,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return &Response{Text: res.Text, Provider: p.Name(), Model: res.Model}, nil
}
