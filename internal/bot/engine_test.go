package bot_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-assistant/internal/bot"
	"chat-assistant/internal/model"
)

func newEngine(t *testing.T) *bot.RuleEngine {
	t.Helper()
	return bot.NewRuleEngine(bot.WithRand(rand.New(rand.NewSource(1))))
}

func TestRuleEngine_Greeting(t *testing.T) {
	ctx := context.Background()

	t.Run("Personalized when a user is present", func(t *testing.T) {
		engine := newEngine(t)
		user := &model.User{Username: "alice"}

		reply, err := engine.Reply(ctx, "hello", user)
		require.NoError(t, err)
		assert.Equal(t, "Hello alice! How can I assist you today?", reply)
	})

	t.Run("Generic without a user", func(t *testing.T) {
		engine := newEngine(t)

		reply, err := engine.Reply(ctx, "Hey, anyone home", nil)
		require.NoError(t, err)
		assert.Equal(t, "Hello there! How can I assist you today?", reply)
	})

	t.Run("Matching is case-insensitive", func(t *testing.T) {
		engine := newEngine(t)

		reply, err := engine.Reply(ctx, "  HELLO  ", nil)
		require.NoError(t, err)
		assert.Contains(t, reply, "Hello there!")
	})
}

func TestRuleEngine_RuleSelection(t *testing.T) {
	ctx := context.Background()
	user := &model.User{Username: "bob"}

	cases := []struct {
		name      string
		utterance string
		contains  string
	}{
		{"Help", "I need some help please", "I can help you with various tasks"},
		{"Weather", "what's the weather like", "real-time weather data"},
		{"Name", "tell me your name", "My name is ChatBot"},
		{"Thanks", "thank you so much", "You're welcome!"},
		{"Voice", "how does the microphone work", "To use voice input"},
		{"Export", "I want to save our conversation", "'Export Chat' button"},
		{"Logout", "how do I sign out", "'Logout' button"},
		{"Identity", "who are you exactly", "not connected to any external API"},
		{"Question deflection", "is the moon made of cheese?", "more advanced AI assistant"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(t)
			reply, err := engine.Reply(ctx, tc.utterance, user)
			require.NoError(t, err)
			assert.Contains(t, reply, tc.contains)
		})
	}
}

func TestRuleEngine_FirstMatchWins(t *testing.T) {
	// "hello, tell me a joke" matches both the greeting and joke rules; the
	// greeting rule has higher priority and must fire alone.
	engine := newEngine(t)

	reply, err := engine.Reply(context.Background(), "hello, tell me a joke", nil)
	require.NoError(t, err)
	assert.Contains(t, reply, "Hello there!")
	assert.NotContains(t, bot.Jokes, reply)
}

func TestRuleEngine_SeededPicksAreReproducible(t *testing.T) {
	ctx := context.Background()
	a := bot.NewRuleEngine(bot.WithRand(rand.New(rand.NewSource(42))))
	b := bot.NewRuleEngine(bot.WithRand(rand.New(rand.NewSource(42))))

	for i := 0; i < 5; i++ {
		replyA, err := a.Reply(ctx, "tell me a joke", nil)
		require.NoError(t, err)
		replyB, err := b.Reply(ctx, "tell me a joke", nil)
		require.NoError(t, err)
		assert.Equal(t, replyA, replyB)
	}
}

func TestRuleEngine_TimeAndDate(t *testing.T) {
	fixed := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	engine := bot.NewRuleEngine(bot.WithClock(func() time.Time { return fixed }))

	reply, err := engine.Reply(context.Background(), "what time is it", nil)
	require.NoError(t, err)
	assert.Equal(t, "The current time is 3:04:05 PM and today's date is 3/7/2024.", reply)
}

func TestRuleEngine_JokePool(t *testing.T) {
	engine := bot.NewRuleEngine(bot.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))))

	// Output is nondeterministic but always a member of the closed pool.
	for i := 0; i < 20; i++ {
		reply, err := engine.Reply(context.Background(), "tell me a joke", nil)
		require.NoError(t, err)
		assert.Contains(t, bot.Jokes, reply)
	}
}

func TestRuleEngine_ShortInput(t *testing.T) {
	engine := newEngine(t)

	reply, err := engine.Reply(context.Background(), "ok", nil)
	require.NoError(t, err)
	assert.Contains(t, reply, "more details")
}

func TestRuleEngine_FallbackPool(t *testing.T) {
	engine := bot.NewRuleEngine(bot.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))))
	user := &model.User{Username: "carol"}
	pool := bot.FallbackReplies("carol")

	for i := 0; i < 20; i++ {
		reply, err := engine.Reply(context.Background(), "let me tell you about my day at the office", user)
		require.NoError(t, err)
		assert.Contains(t, pool, reply)
	}
}
