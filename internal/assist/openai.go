package assist

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI generates text through any OpenAI-compatible chat endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a client. An empty baseURL targets api.openai.com.
func NewOpenAI(apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// GenerateText returns the first choice's content.
func (o *OpenAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	return o.complete(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: userMessage(prompt),
	})
}

// GenerateJSON requests a JSON object constrained by schema.
func (o *OpenAI) GenerateJSON(ctx context.Context, prompt string, schema Schema) (string, error) {
	def := openAISchema(schema)
	return o.complete(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: userMessage(prompt),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schema.Name,
				Schema: &def,
			},
		},
	})
}

func (o *OpenAI) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func userMessage(prompt string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}}
}

func openAISchema(schema Schema) jsonschema.Definition {
	props := make(map[string]jsonschema.Definition, len(schema.Properties))
	for _, p := range schema.Properties {
		props[p.Name] = jsonschema.Definition{Type: jsonschema.String, Description: p.Description}
	}
	return jsonschema.Definition{
		Type:       jsonschema.Object,
		Properties: props,
		Required:   schema.Required,
	}
}
