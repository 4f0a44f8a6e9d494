package openai

import (
	"context"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rotisserie/eris"
)

const defaultModel = "gpt-4o"

// Client performs chat completions against the OpenAI API.
type Client interface {
	GenerateText(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// GenerateRequest is a single-turn generation request. System may be empty.
type GenerateRequest struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int64
	Temperature *float64
}

// GenerateResult is the generated output.
type GenerateResult struct {
	Text  string
	Model string
}

// sdkClient implements Client using the official openai-go SDK.
type sdkClient struct {
	client sdk.Client
	model  string
}

// NewClient creates an OpenAI client. Model may be empty to use the default.
func NewClient(apiKey, model string) Client {
	if model == "" {
		model = defaultModel
	}
	return &sdkClient{
		client: sdk.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *sdkClient) GenerateText(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	var msgs []sdk.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, sdk.SystemMessage(req.System))
	}
	msgs = append(msgs, sdk.UserMessage(req.Prompt))

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(model),
		Messages: msgs,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(req.MaxTokens)
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "openai: chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, eris.New("openai: empty choices")
	}

	return &GenerateResult{
		Text:  resp.Choices[0].Message.Content,
		Model: model,
	}, nil
}
