package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"five-card-trick-go/internal/game/fivecard"
	"five-card-trick-go/internal/models"
)

const defaultPatterModel = openai.ChatModelGPT4oMini

// PatterService turns a committed encoding into magician patter. It is an
// optional garnish: when no API key is configured every call returns
// models.ErrPatterDisabled and the codec surface is unaffected.
type PatterService struct {
	client  openai.Client
	model   string
	enabled bool
}

func NewPatterService(apiKey, model string) *PatterService {
	if apiKey == "" {
		return &PatterService{}
	}
	if model == "" {
		model = defaultPatterModel
	}
	return &PatterService{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		enabled: true,
	}
}

func (s *PatterService) Enabled() bool {
	return s != nil && s.enabled
}

const patterSystemPrompt = `You are a stage magician's assistant. Given the four
face-up cards of a five-card trick and the card kept face down, write two or
three sentences of patter the magician can speak while the audience studies the
arrangement. Never state the hidden card outright.`

// Generate asks the model for patter describing the committed trick.
func (s *PatterService) Generate(ctx context.Context, enc *fivecard.Encoding) (string, error) {
	if !s.Enabled() {
		return "", models.ErrPatterDisabled
	}
	if enc == nil {
		return "", models.ErrNotCommitted
	}

	visible := make([]string, 0, len(enc.Arrangement))
	for _, c := range enc.Arrangement {
		visible = append(visible, c.String())
	}
	user := fmt.Sprintf(
		"Face-up cards in display order: %s. Hidden card: %s. Display mode: %s.",
		strings.Join(visible, ", "), enc.Hidden.String(), enc.Mode,
	)

	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(patterSystemPrompt),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("patter generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("patter generation: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
