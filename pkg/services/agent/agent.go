// Package agent answers free-text questions about a report table.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
	"github.com/de-tools/hostaway-atlas/pkg/store/tabular"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = openai.GPT3Dot5Turbo

	systemPrompt = "You are a data analyst. Answer questions using only the CSV data provided. " +
		"Be concise and state numbers exactly as they appear in the data."
)

// Agent answers a question about table, authenticating with apiKey.
type Agent interface {
	Ask(ctx context.Context, apiKey string, table *domain.Table, question string) (string, error)
}

type Settings struct {
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	BaseURL     string  `mapstructure:"base_url"`
}

// OpenAI sends the table as CSV in the prompt of a chat completion.
type OpenAI struct {
	settings Settings
}

func NewOpenAI(settings Settings) *OpenAI {
	if settings.Model == "" {
		settings.Model = DefaultModel
	}
	return &OpenAI{settings: settings}
}

// Ask never panics on a collaborator failure; every error is an AgentError.
func (a *OpenAI) Ask(ctx context.Context, apiKey string, table *domain.Table, question string) (string, error) {
	logger := zerolog.Ctx(ctx)

	if strings.TrimSpace(question) == "" {
		return "", &domain.AgentError{Err: errors.New("question is empty")}
	}
	data, err := tabular.Encode(table)
	if err != nil {
		return "", &domain.AgentError{Err: err}
	}

	cfg := openai.DefaultConfig(apiKey)
	if a.settings.BaseURL != "" {
		cfg.BaseURL = a.settings.BaseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.settings.Model,
		Temperature: a.settings.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Data:\n%s\nQuestion: %s", data, question)},
		},
	})
	if err != nil {
		logger.Warn().Err(err).Str("model", a.settings.Model).Msg("agent request failed")
		return "", &domain.AgentError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &domain.AgentError{Err: errors.New("agent returned no answer")}
	}

	logger.Debug().
		Str("model", a.settings.Model).
		Int("rows", table.Len()).
		Int("total_tokens", resp.Usage.TotalTokens).
		Msg("agent answered")
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
