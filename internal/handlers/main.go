package handlers

import (
	"context"
	"encoding/json"
	"iter"
	"log/slog"
	"net/http"

	"github.com/jacobjk03/Portfolio/internal/models"
	"github.com/jacobjk03/Portfolio/internal/profile"
)

// LLM represents the upstream streaming completion provider. Chat accepts a system
// prompt and an ordered conversation history, returning an iterator that yields text
// fragments and potential errors. Configured reports whether a credential is present;
// the relay checks it before opening any stream.
type LLM interface {
	Configured() bool
	Model() string
	Chat(ctx context.Context, systemPrompt string, messages []models.Message) iter.Seq2[string, error]
}

// TranscriptStore records completed relay exchanges for offline review.
type TranscriptStore interface {
	AddExchange(ctx context.Context, exchange models.Exchange) (string, error)
}

// Main handles the chat relay endpoints, holding the upstream provider, the static
// profile the system prompt is assembled from, and an optional transcript store. All
// fields are read-only after construction, so one value is safely shared across
// concurrent requests.
type Main struct {
	llm     LLM
	store   TranscriptStore
	profile profile.Profile

	logger *slog.Logger
}

const errLoggerKey = "err"

// NewMain creates a new Main instance with the provided LLM, profile, and transcript
// store. A nil store disables transcript recording.
func NewMain(llm LLM, prof profile.Profile, store TranscriptStore, logger *slog.Logger) Main {
	return Main{
		llm:     llm,
		store:   store,
		profile: prof,
		logger:  logger.With(slog.String("module", "handlers")),
	}
}

// HandleHealth reports server liveness.
func (m Main) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
