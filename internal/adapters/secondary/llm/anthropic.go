// Package llm talks to hosted language models.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/joho/godotenv"

	"github.com/fredcamaral/slidecraft/internal/domain/entities"
	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

const (
	anthropicVersion   = "2023-06-01"
	defaultBaseURL     = "https://api.anthropic.com"
	defaultTemperature = 0.7
	maxErrorBody       = 1 << 12
)

// AnthropicConfig configures the Messages API client
type AnthropicConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

// ConfigFromGenerator reads the API key from the configured environment
// variable. A missing key is a configuration error.
func ConfigFromGenerator(g entities.GeneratorConfig) (AnthropicConfig, error) {
	key := strings.TrimSpace(os.Getenv(g.GetAPIKeyEnv()))
	if key == "" {
		return AnthropicConfig{}, &entities.BuildError{
			Type:    entities.ErrorTypeConfiguration,
			Message: fmt.Sprintf("%s not set", g.GetAPIKeyEnv()),
			Details: "export the key or add it to a .env file",
		}
	}
	temperature := g.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	return AnthropicConfig{
		APIKey:      key,
		BaseURL:     g.BaseURL,
		Model:       g.GetModel(),
		MaxTokens:   g.GetMaxTokens(),
		Temperature: temperature,
	}, nil
}

// LoadDotEnv loads dir/.env without overriding variables already set
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// AnthropicClient is a chat model backed by the Anthropic Messages API
type AnthropicClient struct {
	config AnthropicConfig
	http   ports.HTTPClient
	logger ports.Logger
}

// NewAnthropicClient creates a client sending requests through httpClient
func NewAnthropicClient(config AnthropicConfig, httpClient ports.HTTPClient, logger ports.Logger) *AnthropicClient {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &AnthropicClient{config: config, http: httpClient, logger: logger}
}

// Complete sends one system and user prompt and returns the text reply
func (c *AnthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	reply, err := c.Generate(ctx, []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", err
	}
	return reply.Content, nil
}

type messageParam struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string         `json:"model"`
	MaxTokens   int            `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
	System      string         `json:"system,omitempty"`
	Messages    []messageParam `json:"messages"`
}

type messagesResponse struct {
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate implements model.BaseChatModel. System messages are joined into
// the top-level system prompt; tool messages are not supported.
func (c *AnthropicClient) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	body, err := c.buildRequest(input, opts...)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.config.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	c.logger.Debug("POST %s model=%s max_tokens=%d", url, body.Model, body.MaxTokens)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Messages API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var result messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, errors.New("response contained no text")
	}

	c.logger.Debug("Messages API usage: %d in, %d out, stop=%s", result.Usage.InputTokens, result.Usage.OutputTokens, result.StopReason)
	return &schema.Message{
		Role:    schema.Assistant,
		Content: text.String(),
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: result.StopReason,
			Usage: &schema.TokenUsage{
				PromptTokens:     result.Usage.InputTokens,
				CompletionTokens: result.Usage.OutputTokens,
				TotalTokens:      result.Usage.InputTokens + result.Usage.OutputTokens,
			},
		},
	}, nil
}

// Stream is not supported; slide generation needs the whole reply
func (c *AnthropicClient) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (c *AnthropicClient) buildRequest(input []*schema.Message, opts ...model.Option) (messagesRequest, error) {
	temperature := float32(c.config.Temperature)
	maxTokens := c.config.MaxTokens
	modelName := c.config.Model
	options := model.GetCommonOptions(&model.Options{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Model:       &modelName,
	}, opts...)

	req := messagesRequest{
		Model:       *options.Model,
		MaxTokens:   *options.MaxTokens,
		Temperature: float64(*options.Temperature),
	}

	var system []string
	for _, msg := range input {
		switch msg.Role {
		case schema.System:
			system = append(system, msg.Content)
		case schema.User:
			req.Messages = append(req.Messages, messageParam{Role: "user", Content: msg.Content})
		case schema.Assistant:
			req.Messages = append(req.Messages, messageParam{Role: "assistant", Content: msg.Content})
		default:
			return messagesRequest{}, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}
	if len(req.Messages) == 0 {
		return messagesRequest{}, errors.New("at least one user message is required")
	}
	req.System = strings.TrimSpace(strings.Join(system, "\n"))
	return req, nil
}

// responseError maps authentication failures to configuration errors
func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := strings.TrimSpace(string(raw))
	var parsed apiError
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &entities.BuildError{
			Type:    entities.ErrorTypeConfiguration,
			Message: "language model rejected the API key",
			Details: message,
		}
	}
	return fmt.Errorf("anthropic API error (%d): %s", resp.StatusCode, message)
}

var (
	_ ports.LanguageModel = (*AnthropicClient)(nil)
	_ model.BaseChatModel = (*AnthropicClient)(nil)
)
