package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"chat-assistant/internal/model"
)

const (
	helpReply = "I can help you with various tasks. Try asking me about:\n- Chat features\n- Account information\n- How to use voice input\n- How to export chat"

	weatherReply = "I don't have access to real-time weather data, but I can tell you that weather conditions vary by location. You might want to check a weather service like weather.com or accuweather.com for accurate forecasts."

	thanksReply = "You're welcome! I'm happy to help. Let me know if you need anything else."

	voiceReply = "To use voice input, click the microphone button next to the message input. Start speaking, and your words will be converted to text. This feature requires microphone permission in your browser."

	exportReply = "You can export this conversation by clicking the 'Export Chat' button at the top of the screen. This will download a text file with the entire chat history."

	logoutReply = "To log out, click the red 'Logout' button in the top-right corner of the screen. This will end your session and return you to the login page."

	identityReply = "I'm a chat assistant created to demonstrate front-end development skills. I can respond to messages, but I'm not connected to any external API or AI service."

	shortInputReply = "Could you please provide more details so I can help you better?"

	questionReply = "That's an interesting question. As a simple demo bot, I have limited knowledge. For complex questions, you might want to try a more advanced AI assistant like ChatGPT or Google Bard."
)

// Jokes is the closed pool for the joke rule. Exported so tests can assert
// set membership against nondeterministic picks.
var Jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Why did the developer go broke? Because he used up all his cache!",
	"How do you comfort a JavaScript bug? You console it!",
	"Why do programmers prefer dark mode? Because light attracts bugs!",
	"What's a computer's favorite snack? Microchips!",
}

// FallbackReplies returns the closed pool for the generic-continuation rule,
// personalized with the display name.
func FallbackReplies(name string) []string {
	return []string{
		"I understand what you're saying. Can you tell me more about that?",
		fmt.Sprintf("That's interesting, %s. Would you like to elaborate?", name),
		"I see. Could you provide more details so I can give a better response?",
		"Interesting point. Let me know if there's anything specific you'd like to discuss.",
		"I appreciate you sharing that. What else would you like to chat about?",
	}
}

var questionPrefixes = []string{"what", "how", "why", "when", "where", "who", "can"}

// RuleEngine maps a normalized utterance to a canned reply via ordered
// keyword rules. First matching rule wins; the joke and fallback rules draw
// uniformly from their pools. The engine is pure apart from its random source
// and clock, both injectable for reproducible tests.
type RuleEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option customizes a RuleEngine.
type Option func(*RuleEngine)

// WithRand replaces the engine's random source.
func WithRand(rng *rand.Rand) Option {
	return func(e *RuleEngine) { e.rng = rng }
}

// WithClock replaces the engine's clock, used by the time/date rule.
func WithClock(now func() time.Time) Option {
	return func(e *RuleEngine) { e.now = now }
}

func NewRuleEngine(opts ...Option) *RuleEngine {
	e := &RuleEngine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reply computes the bot's response to an utterance. It never fails; the
// error is part of the Provider contract only.
func (e *RuleEngine) Reply(_ context.Context, utterance string, user *model.User) (string, error) {
	input := strings.ToLower(strings.TrimSpace(utterance))

	name := "there"
	if user != nil && user.Username != "" {
		name = user.Username
	}

	switch {
	case containsAny(input, "hello", "hi", "hey"):
		return fmt.Sprintf("Hello %s! How can I assist you today?", name), nil

	case strings.Contains(input, "help"):
		return helpReply, nil

	case strings.Contains(input, "weather"):
		return weatherReply, nil

	case strings.Contains(input, "name"):
		return fmt.Sprintf("My name is ChatBot. I'm your virtual assistant. Nice to meet you, %s!", name), nil

	case strings.Contains(input, "thank"):
		return thanksReply, nil

	case containsAny(input, "voice", "speak", "microphone"):
		return voiceReply, nil

	case containsAny(input, "export", "save", "download"):
		return exportReply, nil

	case containsAny(input, "logout", "sign out"):
		return logoutReply, nil

	case containsAny(input, "who are you", "what are you"):
		return identityReply, nil

	case containsAny(input, "time", "date"):
		now := e.now()
		return fmt.Sprintf("The current time is %s and today's date is %s.",
			now.Format("3:04:05 PM"), now.Format("1/2/2006")), nil

	case containsAny(input, "joke", "funny"):
		return e.pick(Jokes), nil

	case utf8.RuneCountInString(input) < 5:
		return shortInputReply, nil

	case looksLikeQuestion(input):
		return questionReply, nil

	default:
		return e.pick(FallbackReplies(name)), nil
	}
}

// pick draws uniformly from pool. rand.Rand is not safe for concurrent use,
// so draws are serialized.
func (e *RuleEngine) pick(pool []string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return pool[e.rng.Intn(len(pool))]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func looksLikeQuestion(s string) bool {
	if strings.Contains(s, "?") {
		return true
	}
	for _, p := range questionPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
