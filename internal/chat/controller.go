// Package chat implements the client-side conversation controller for the portfolio
// assistant. The controller owns the message list for one session, drives requests
// against the relay endpoint, and applies the streamed reply incrementally, so a UI
// shell only needs to render snapshots and call Send and Reset.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jacobjk03/Portfolio/internal/models"
	"github.com/jacobjk03/Portfolio/internal/stream"
)

// State represents the controller's position in one request cycle.
type State string

const (
	// StateIdle means no request is in flight.
	StateIdle State = "idle"
	// StateAwaiting means a request was sent and the typing placeholder is visible,
	// but no reply fragment has arrived yet.
	StateAwaiting State = "awaiting-first-byte"
	// StateStreaming means reply fragments are being applied to the in-progress
	// assistant message.
	StateStreaming State = "streaming"
)

// DefaultGreeting seeds an empty conversation when the chat surface opens.
const DefaultGreeting = "Hi! I'm Jacob's AI assistant. Ask me anything about his background, skills, projects, or tech interests!"

// unavailableWarning is appended as a single assistant message when a turn fails and
// the server supplied no more specific error text.
const unavailableWarning = "⚠️ AI is unavailable. Try again."

type chatRequest struct {
	Messages []models.Message `json:"messages"`
}

// Controller owns the conversation for one chat session. At most one request is in
// flight at a time: a new Send supersedes and cancels the previous one, and events
// from a superseded request are discarded by generation number.
type Controller struct {
	endpoint   string
	client     *http.Client
	greeting   string
	onChange   func([]models.Message)
	onFragment func(string)

	logger *slog.Logger

	mu         sync.Mutex
	messages   []models.Message
	state      State
	generation uint64
	cancel     context.CancelFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithHTTPClient replaces the HTTP client used for relay requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) { c.client = client }
}

// WithGreeting replaces the canned greeting text.
func WithGreeting(text string) Option {
	return func(c *Controller) { c.greeting = text }
}

// WithLogger replaces the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger.With(slog.String("module", "chat")) }
}

// WithOnChange registers a callback invoked with a snapshot of the conversation after
// every visible change, for the rendering shell.
func WithOnChange(fn func([]models.Message)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithOnFragment registers a callback invoked for each reply fragment as it is
// applied, in arrival order. Fragments of superseded requests are not reported.
func WithOnFragment(fn func(string)) Option {
	return func(c *Controller) { c.onFragment = fn }
}

// New creates a Controller targeting the given relay endpoint.
func New(endpoint string, opts ...Option) *Controller {
	c := &Controller{
		endpoint: endpoint,
		client:   http.DefaultClient,
		greeting: DefaultGreeting,
		logger:   slog.Default(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Messages returns a snapshot copy of the conversation in insertion order.
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// State returns the controller's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EnsureGreeting seeds the conversation with the canned greeting if it is empty. The
// surface that opens the chat calls this once; reopening an ongoing session is a
// no-op.
func (c *Controller) EnsureGreeting() {
	c.mu.Lock()
	if len(c.messages) > 0 {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, c.greetingMessage())
	c.mu.Unlock()
	c.notify()
}

// Reset cancels any in-flight request and replaces the conversation with a single
// fresh greeting message.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.state = StateIdle
	c.messages = []models.Message{c.greetingMessage()}
	c.mu.Unlock()
	c.notify()
}

// Send submits one user turn and blocks until the reply stream settles. Blank or
// whitespace-only input is a no-op. Calling Send while a previous turn is still
// streaming cancels that turn first; the superseded turn produces no error message.
//
// A failed turn appends exactly one assistant warning message and preserves all prior
// history; the returned error carries the underlying cause for callers that want it.
// Cancellation returns nil.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateAwaiting

	c.messages = append(c.messages, models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})
	typingID := uuid.New().String()
	c.messages = append(c.messages, models.Message{
		ID:        typingID,
		Role:      models.RoleTyping,
		Timestamp: time.Now(),
	})
	history := models.SanitizeHistory(c.messages)
	c.mu.Unlock()
	c.notify()

	defer cancel()
	err := c.stream(runCtx, gen, typingID, history)

	c.mu.Lock()
	if gen == c.generation {
		c.state = StateIdle
		c.cancel = nil
	}
	c.mu.Unlock()

	return err
}

func (c *Controller) stream(ctx context.Context, gen uint64, typingID string, history []models.Message) error {
	body, err := json.Marshal(chatRequest{Messages: history})
	if err != nil {
		c.fail(gen, typingID, "", unavailableWarning)
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.fail(gen, typingID, "", unavailableWarning)
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isCanceled(ctx, err) {
			c.retire(typingID)
			return nil
		}
		c.fail(gen, typingID, "", unavailableWarning)
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		warning := unavailableWarning
		var errBody struct {
			Error string `json:"error"`
		}
		if derr := json.NewDecoder(resp.Body).Decode(&errBody); derr == nil && errBody.Error != "" {
			warning = errBody.Error
		}
		c.fail(gen, typingID, "", warning)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	dec := &stream.Decoder{}
	buf := make([]byte, 4096)
	assistantID := ""
	done := false

	for !done {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			for _, ev := range dec.Feed(buf[:n]) {
				switch ev.Type {
				case stream.EventContent:
					assistantID = c.applyFragment(gen, typingID, assistantID, ev.Content)
				case stream.EventError:
					c.fail(gen, typingID, assistantID, ev.Err)
					return fmt.Errorf("stream error: %s", ev.Err)
				case stream.EventDone:
					done = true
				}
				if done {
					break
				}
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			if isCanceled(ctx, rerr) {
				c.retire(typingID)
				return nil
			}
			c.fail(gen, typingID, assistantID, unavailableWarning)
			return fmt.Errorf("error reading response: %w", rerr)
		}
	}

	if dropped := dec.Dropped(); dropped > 0 {
		c.logger.Debug("Skipped malformed stream lines", slog.Int("count", dropped))
	}

	c.finish(gen, typingID)
	return nil
}

// applyFragment appends one fragment to the in-progress assistant message, creating
// it and retiring the typing placeholder on the first fragment of the turn. Fragments
// from superseded generations are discarded. It returns the in-progress message ID.
func (c *Controller) applyFragment(gen uint64, typingID, assistantID, fragment string) string {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return assistantID
	}
	if assistantID == "" {
		c.removeLocked(typingID)
		assistantID = uuid.New().String()
		c.messages = append(c.messages, models.Message{
			ID:        assistantID,
			Role:      models.RoleAssistant,
			Timestamp: time.Now(),
		})
		c.state = StateStreaming
	}
	if i := c.indexLocked(assistantID); i >= 0 {
		c.messages[i].Content += fragment
	}
	c.mu.Unlock()

	if c.onFragment != nil {
		c.onFragment(fragment)
	}
	c.notify()
	return assistantID
}

// fail resolves a turn that ended in a genuine failure: the typing placeholder and
// any in-progress reply are removed and a single warning message is appended. Prior
// history is never discarded. A superseded turn only cleans up its own placeholder.
func (c *Controller) fail(gen uint64, typingID, assistantID, warning string) {
	c.mu.Lock()
	c.removeLocked(typingID)
	if gen == c.generation {
		if assistantID != "" {
			c.removeLocked(assistantID)
		}
		c.messages = append(c.messages, models.Message{
			ID:        uuid.New().String(),
			Role:      models.RoleAssistant,
			Content:   warning,
			Timestamp: time.Now(),
		})
		c.state = StateIdle
	}
	c.mu.Unlock()
	c.notify()
}

// retire resolves a cancelled turn silently: its typing placeholder is removed and
// any partial reply content already applied stays in place.
func (c *Controller) retire(typingID string) {
	c.mu.Lock()
	c.removeLocked(typingID)
	c.mu.Unlock()
	c.notify()
}

// finish resolves a terminated stream: the placeholder is removed in case the
// terminator arrived before any content, and the in-progress message (if any) becomes
// immutable by virtue of the turn ending.
func (c *Controller) finish(gen uint64, typingID string) {
	c.mu.Lock()
	c.removeLocked(typingID)
	if gen == c.generation {
		c.state = StateIdle
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) greetingMessage() models.Message {
	return models.Message{
		ID:        uuid.New().String(),
		Role:      models.RoleAssistant,
		Content:   c.greeting,
		Timestamp: time.Now(),
	}
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.Messages())
}

func (c *Controller) indexLocked(id string) int {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) removeLocked(id string) {
	if i := c.indexLocked(id); i >= 0 {
		c.messages = append(c.messages[:i], c.messages[i+1:]...)
	}
}

func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
