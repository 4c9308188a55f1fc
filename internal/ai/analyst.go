package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/camuig/lumen-watch/internal/config"
	"github.com/camuig/lumen-watch/internal/logger"
)

type Analyst struct {
	client *openai.Client
	model  string
	cfg    *config.Config
	logger *logger.Logger
}

func NewAnalyst(cfg *config.Config, log *logger.Logger) *Analyst {
	ocfg := openai.DefaultConfig(cfg.DeepSeek.APIKey)
	ocfg.BaseURL = "https://api.deepseek.com/v1"

	return &Analyst{
		client: openai.NewClientWithConfig(ocfg),
		model:  cfg.DeepSeek.Model,
		cfg:    cfg,
		logger: log,
	}
}

func (a *Analyst) Analyze(ctx context.Context, req *AnalysisRequest) ([]Decision, string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.DeepSeekTimeout())
	defer cancel()

	userPrompt := BuildUserPrompt(req)

	a.logger.Info("sending analysis request to DeepSeek",
		"pairs", len(req.Pairs),
		"active_signals", len(req.ActiveSignals))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("deepseek API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, "", fmt.Errorf("deepseek returned no choices")
	}

	rawResponse := resp.Choices[0].Message.Content
	a.logger.Info("received AI response", "length", len(rawResponse))
	a.logger.Debug("AI raw response", "content", rawResponse)

	decisions, err := ParseDecisions(rawResponse)
	if err != nil {
		return nil, rawResponse, fmt.Errorf("parse AI response: %w", err)
	}

	return decisions, rawResponse, nil
}
