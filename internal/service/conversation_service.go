package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"chat-assistant/internal/bot"
	apperrors "chat-assistant/internal/errors"
	"chat-assistant/internal/model"
)

// maxInputHistory bounds the submitted-input history used for up/down
// navigation; the oldest entry is dropped beyond this.
const maxInputHistory = 10

// exportTimeLayout approximates the browser's toLocaleString output used by
// the original transcript format.
const exportTimeLayout = "1/2/2006, 3:04:05 PM"

// HistoryDirection is the direction of an input-history navigation step.
type HistoryDirection string

const (
	HistoryUp   HistoryDirection = "up"
	HistoryDown HistoryDirection = "down"
)

type convState int

const (
	stateIdle convState = iota
	stateAwaitingReply
)

// Sessions is the slice of the session store the conversation needs.
type Sessions interface {
	LoadLog(ctx context.Context) []model.Message
	SaveLog(ctx context.Context, log []model.Message) error
	CurrentUser(ctx context.Context) (*model.User, error)
}

// ConversationConfig carries the simulated reply latency bounds. A zero
// config means no artificial delay, which tests rely on.
type ConversationConfig struct {
	ReplyDelayMin time.Duration
	ReplyDelayMax time.Duration
}

// ConversationService manages the ordered message log, the pending-reply
// state, and input history navigation. It is the single writer of the
// persisted log: every mutation is saved through the session store.
//
// The state machine has two states, idle and awaiting-reply. Only one reply
// cycle may be in flight; submissions while one is pending are rejected with
// ErrConflict. A pending reply is never cancelled; if the caller moves on
// mid-delay, the bot message still eventually appends. That mirrors the
// original client's behavior and is intentional.
type ConversationService struct {
	mu       sync.Mutex
	sessions Sessions
	bot      bot.Provider
	cfg      ConversationConfig
	rng      *rand.Rand

	state   convState
	log     []model.Message
	history []string
	cursor  int // index into history, -1 means "none"
	input   string
}

func NewConversationService(ctx context.Context, sessions Sessions, provider bot.Provider, cfg ConversationConfig) *ConversationService {
	return &ConversationService{
		sessions: sessions,
		bot:      provider,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      sessions.LoadLog(ctx),
		cursor:   -1,
	}
}

// Log returns a copy of the conversation log in chronological order.
func (s *ConversationService) Log() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.log))
	copy(out, s.log)
	return out
}

// Pending reports whether a reply cycle is in flight.
func (s *ConversationService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateAwaitingReply
}

// Input returns the current uncommitted input text.
func (s *ConversationService) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the current input text.
func (s *ConversationService) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// AppendInput appends recognized text to the current input, the contract the
// voice capture adapter feeds.
func (s *ConversationService) AppendInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input += text
}

// Submit appends a user message for text and schedules the bot's reply after
// a simulated latency. It returns the appended user message and a channel
// that delivers the bot message once the cycle completes.
//
// Empty or whitespace-only text is rejected with ErrValidation and changes
// nothing. A submission while a reply is pending is rejected with ErrConflict.
func (s *ConversationService) Submit(ctx context.Context, text string) (model.Message, <-chan model.Message, error) {
	if strings.TrimSpace(text) == "" {
		return model.Message{}, nil, fmt.Errorf("%w: message must not be empty", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateIdle {
		return model.Message{}, nil, fmt.Errorf("%w: a reply is already pending", apperrors.ErrConflict)
	}

	userMsg := model.NewUserMessage(text, time.Now())
	s.log = append(s.log, userMsg)

	s.history = append([]string{text}, s.history...)
	if len(s.history) > maxInputHistory {
		s.history = s.history[:maxInputHistory]
	}
	s.cursor = -1
	s.input = ""

	s.state = stateAwaitingReply
	s.persistLocked(ctx)

	// The user record is captured now so a logout mid-delay cannot change
	// the personalization of the in-flight reply.
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		user = nil
	}

	done := make(chan model.Message, 1)
	go s.completeReply(text, user, s.replyDelayLocked(), done)

	return userMsg, done, nil
}

// replyDelayLocked draws a uniform delay from the configured bounds.
func (s *ConversationService) replyDelayLocked() time.Duration {
	min, max := s.cfg.ReplyDelayMin, s.cfg.ReplyDelayMax
	if max <= min {
		return min
	}
	return min + time.Duration(s.rng.Int63n(int64(max-min)))
}

// completeReply runs the awaiting-reply half of the cycle: wait out the
// simulated latency, compute the reply, append it, and return to idle. It
// deliberately ignores caller cancellation; the reply always lands.
func (s *ConversationService) completeReply(text string, user *model.User, delay time.Duration, done chan<- model.Message) {
	time.Sleep(delay)

	content := s.safeReply(text, user)

	s.mu.Lock()
	botMsg := model.NewBotMessage(content, time.Now())
	s.log = append(s.log, botMsg)
	s.state = stateIdle
	s.persistLocked(context.Background())
	s.mu.Unlock()

	done <- botMsg
	close(done)
}

// safeReply invokes the response engine, converting any error or panic into
// the apology text so the state machine can never be left stuck.
func (s *ConversationService) safeReply(text string, user *model.User) (content string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Reply generation panicked", "panic", r)
			content = model.ApologyText
		}
	}()

	reply, err := s.bot.Reply(context.Background(), text, user)
	if err != nil {
		slog.Error("Reply generation failed", "error", err)
		return model.ApologyText
	}
	return reply
}

// NavigateHistory moves the history cursor and overwrites the current input
// with the entry at the new position, discarding any unsent edits. Moving
// down past the newest entry clears the cursor and blanks the input. Only
// valid while idle.
func (s *ConversationService) NavigateHistory(direction HistoryDirection) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateIdle {
		return "", fmt.Errorf("%w: cannot navigate history while a reply is pending", apperrors.ErrConflict)
	}

	switch direction {
	case HistoryUp:
		if s.cursor < len(s.history)-1 {
			s.cursor++
			s.input = s.history[s.cursor]
		}
	case HistoryDown:
		if s.cursor > 0 {
			s.cursor--
			s.input = s.history[s.cursor]
		} else if s.cursor == 0 {
			s.cursor = -1
			s.input = ""
		}
	default:
		return "", fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, direction)
	}

	return s.input, nil
}

// Clear replaces the whole log with a single fresh greeting. The caller must
// have confirmed the action explicitly; an unconfirmed clear is rejected.
func (s *ConversationService) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("%w: clearing the chat requires confirmation", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateIdle {
		return fmt.Errorf("%w: cannot clear while a reply is pending", apperrors.ErrConflict)
	}

	s.log = []model.Message{model.NewBotMessage(model.ClearedGreetingText, time.Now())}
	s.persistLocked(ctx)
	return nil
}

// Reset reloads state for a fresh chat session, dropping input history. Used
// after logout/login so a new session starts from the persisted (or seeded)
// log.
func (s *ConversationService) Reset(ctx context.Context) {
	log := s.sessions.LoadLog(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = log
	s.history = nil
	s.cursor = -1
	s.input = ""
}

// Export renders the log as a plain-text transcript, one block per message,
// and returns the download filename alongside it.
func (s *ConversationService) Export(ctx context.Context) (filename, content string) {
	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		user = nil
	}
	senderName := func(m model.Message) string {
		if m.Sender == model.SenderUser {
			if user != nil && user.Username != "" {
				return user.Username
			}
			return "You"
		}
		return "Bot"
	}

	s.mu.Lock()
	lines := make([]string, len(s.log))
	for i, msg := range s.log {
		lines[i] = fmt.Sprintf("[%s] %s: %s", msg.Timestamp.Format(exportTimeLayout), senderName(msg), msg.Content)
	}
	s.mu.Unlock()

	filename = fmt.Sprintf("chat-export-%s.txt", time.Now().Format("2006-01-02"))
	return filename, strings.Join(lines, "\n\n")
}

// persistLocked saves the log; the caller holds the mutex. Persistence
// failures are logged rather than propagated; the in-memory conversation
// stays authoritative for the session.
func (s *ConversationService) persistLocked(ctx context.Context) {
	if err := s.sessions.SaveLog(ctx, s.log); err != nil {
		slog.Error("Failed to persist conversation log", "error", err)
	}
}
