package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/jacobjk03/Portfolio/internal/models"
)

// Groq provides an implementation of the LLM interface backed by Groq's hosted
// models. Groq's chat completion API is OpenAI wire compatible, so the adapter drives
// it through the go-openai client pointed at the Groq endpoint.
type Groq struct {
	apiKey string
	model  string

	client *goopenai.Client

	logger *slog.Logger
}

const groqBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the model used when the configuration does not name one.
const DefaultModel = "llama-3.3-70b-versatile"

// Generation parameters are fixed constants to bound cost and latency; they are a
// product choice and must never be user-controlled.
const (
	groqTemperature = 0.7
	groqMaxTokens   = 500
)

// NewGroq creates a new Groq instance with the specified API key and model name. An
// empty model falls back to DefaultModel. An empty API key is allowed here; the
// handler refuses requests until one is configured.
func NewGroq(apiKey, model string, logger *slog.Logger) Groq {
	if model == "" {
		model = DefaultModel
	}

	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL

	return Groq{
		apiKey: apiKey,
		model:  model,
		client: goopenai.NewClientWithConfig(cfg),
		logger: logger.With(slog.String("module", "groq")),
	}
}

// Configured reports whether an upstream credential is present.
func (g Groq) Configured() bool {
	return g.apiKey != ""
}

// Model returns the fixed model name requests are sent to.
func (g Groq) Model() string {
	return g.model
}

// Chat streams one completion for the given system prompt and conversation history.
// It returns an iterator yielding text fragments in the order the provider emitted
// them; a single upstream call is made per invocation, with no retry or model
// fallback. Cancelling the context ends the iteration without yielding an error.
func (g Groq) Chat(ctx context.Context, systemPrompt string, messages []models.Message) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		msgs := make([]goopenai.ChatCompletionMessage, 0, len(messages)+1)
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
		for _, msg := range messages {
			msgs = append(msgs, goopenai.ChatCompletionMessage{
				Role:    string(msg.Role),
				Content: msg.Content,
			})
		}

		req := goopenai.ChatCompletionRequest{
			Model:       g.model,
			Messages:    msgs,
			Temperature: groqTemperature,
			MaxTokens:   groqMaxTokens,
			Stream:      true,
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := g.client.CreateChatCompletionStream(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			yield("", fmt.Errorf("error sending request: %w", err))
			return
		}
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				if errors.Is(err, context.Canceled) {
					return
				}
				yield("", fmt.Errorf("error receiving response: %w", err))
				return
			}

			if len(response.Choices) == 0 {
				continue
			}

			delta := response.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			g.logger.Debug("Received fragment", slog.String("content", delta))
			if !yield(delta, nil) {
				return
			}
		}
	}
}
