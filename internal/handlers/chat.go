package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jacobjk03/Portfolio/internal/models"
	"github.com/jacobjk03/Portfolio/internal/profile"
	"github.com/jacobjk03/Portfolio/internal/stream"
)

type chatRequest struct {
	Messages []models.Message `json:"messages"`
}

// unavailableWarning is streamed as regular content when the upstream call fails
// after the response stream has opened, so the client always sees a terminator.
const unavailableWarning = "⚠️ AI is unavailable. Try again."

// upstreamTimeout bounds one upstream completion call. The observed behavior enforces
// no timeout; this cap is a deliberate deviation.
const upstreamTimeout = 2 * time.Minute

// HandleChat relays one conversation turn to the upstream provider, re-framing its
// incremental output as a line-oriented event stream.
//
// The request body carries the ordered conversation history; client-supplied system
// and typing rows are dropped before the assembled system instruction is prepended. A
// missing upstream credential or an undecodable body produces a 500 JSON error before
// any streaming begins. Once the stream is open, every path ends with exactly one
// terminator line: on upstream failure the handler emits a fallback warning as content
// and then terminates the stream cleanly rather than leaving the client waiting.
func (m Main) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		m.logger.Error("Method not allowed", slog.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// The credential check must come first, synchronously, so a misconfigured server
	// never opens a partial stream.
	if !m.llm.Configured() {
		m.logger.Error("GROQ_API_KEY is missing from environment")
		writeJSONError(w, http.StatusInternalServerError, "Add your GROQ_API_KEY to the server environment")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.logger.Error("Failed to decode request body", slog.String(errLoggerKey, err.Error()))
		writeJSONError(w, http.StatusInternalServerError, "⚠️ System offline — please try again shortly.")
		return
	}

	history := models.SanitizeHistory(req.Messages)
	systemPrompt := profile.SystemPrompt(m.profile)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	out := stream.NewWriter(w)

	// The request context propagates client disconnects, so the upstream stream stops
	// being consumed when nobody is listening.
	ctx, cancel := context.WithTimeout(r.Context(), upstreamTimeout)
	defer cancel()

	var reply strings.Builder
	failed := false
	for fragment, err := range m.llm.Chat(ctx, systemPrompt, history) {
		if err != nil {
			m.logger.Error("Error from llm provider", slog.String(errLoggerKey, err.Error()))
			if werr := out.Content(unavailableWarning); werr != nil {
				m.logger.Error("Failed to write fallback warning", slog.String(errLoggerKey, werr.Error()))
			}
			failed = true
			break
		}

		reply.WriteString(fragment)
		if werr := out.Content(fragment); werr != nil {
			m.logger.Error("Failed to write fragment", slog.String(errLoggerKey, werr.Error()))
			failed = true
			break
		}
	}

	if err := out.Done(); err != nil {
		m.logger.Error("Failed to write terminator", slog.String(errLoggerKey, err.Error()))
		return
	}

	if !failed {
		m.recordExchange(history, reply.String())
	}
}

// recordExchange appends the completed turn to the transcript store, if one is
// configured. Recording happens after the terminator is written and never surfaces
// failures to the client.
func (m Main) recordExchange(history []models.Message, answer string) {
	if m.store == nil || answer == "" {
		return
	}

	question := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			question = history[i].Content
			break
		}
	}

	exchange := models.Exchange{
		ID:        uuid.New().String(),
		Question:  question,
		Answer:    answer,
		Model:     m.llm.Model(),
		Timestamp: time.Now(),
	}
	if _, err := m.store.AddExchange(context.Background(), exchange); err != nil {
		m.logger.Error("Failed to record exchange", slog.String(errLoggerKey, err.Error()))
	}
}
