package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/h2non/filetype"
	openai "github.com/sashabaranov/go-openai"
)

// visionPrompt instructs the model to answer in the same label/score shape
// the dedicated detection models use, so its output flows through the same
// normalizer as every other cascade member.
const visionPrompt = `Decide whether this image is AI-generated or a natural photograph.
Respond with ONLY a JSON array of exactly two objects, no prose:
[{"label":"ai","score":<0..1>},{"label":"real","score":<0..1>}]
The two scores must sum to 1.`

// OpenAIProvider is an optional cascade member backed by a vision-capable
// chat model. Disabled unless explicitly configured.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a vision-model classifier
func NewOpenAIProvider(apiKey, model, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// Name returns the provider identifier
func (p *OpenAIProvider) Name() string {
	return "openai/" + p.model
}

// Infer sends the image to the vision model and returns its label/score
// array. A reply that is not a valid JSON array counts as a provider
// protocol failure, same as any other cascade member.
func (p *OpenAIProvider) Infer(ctx context.Context, image []byte) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: visionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL(image),
						},
					},
				},
			},
		},
		MaxTokens:   100,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	if !json.Valid([]byte(reply)) || !strings.HasPrefix(reply, "[") {
		return nil, fmt.Errorf("non-JSON reply from '%s'", p.Name())
	}
	return json.RawMessage(reply), nil
}

// dataURL encodes the image as a data URI for the vision API
func dataURL(image []byte) string {
	mime := "image/jpeg"
	if t, err := filetype.Match(image); err == nil && t.MIME.Value != "" {
		mime = t.MIME.Value
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
}
