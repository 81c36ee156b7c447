package voice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "chat-assistant/internal/errors"
	"chat-assistant/internal/voice"
)

// fakeRecognizer records its callbacks so tests can drive recognition events.
type fakeRecognizer struct {
	onText   func(string)
	onErr    func(error)
	stopped  int
	startErr error
}

func (f *fakeRecognizer) Start(_ context.Context, onText func(string), onErr func(error)) (func(), error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.onText = onText
	f.onErr = onErr
	return func() { f.stopped++ }, nil
}

func TestAdapter_NoRecognizer(t *testing.T) {
	adapter := voice.NewAdapter(nil)

	assert.False(t, adapter.Supported())
	assert.False(t, adapter.Listening())

	err := adapter.Start(context.Background(), nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnsupported)
	assert.False(t, adapter.Listening())

	// Stop with no session is harmless.
	adapter.Stop()
}

func TestAdapter_SingleSession(t *testing.T) {
	rec := &fakeRecognizer{}
	adapter := voice.NewAdapter(rec)
	ctx := context.Background()

	require.True(t, adapter.Supported())
	require.NoError(t, adapter.Start(ctx, nil, nil))
	assert.True(t, adapter.Listening())

	err := adapter.Start(ctx, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	adapter.Stop()
	assert.False(t, adapter.Listening())
	assert.Equal(t, 1, rec.stopped)

	// A new session may begin after the old one ends.
	require.NoError(t, adapter.Start(ctx, nil, nil))
	assert.True(t, adapter.Listening())
}

func TestAdapter_DeliversRecognizedText(t *testing.T) {
	rec := &fakeRecognizer{}
	adapter := voice.NewAdapter(rec)

	var got []string
	require.NoError(t, adapter.Start(context.Background(), func(text string) {
		got = append(got, text)
	}, nil))

	rec.onText("hello ")
	rec.onText("world")

	assert.Equal(t, []string{"hello ", "world"}, got)
	assert.True(t, adapter.Listening())
}

func TestAdapter_RecognitionFaultEndsSession(t *testing.T) {
	rec := &fakeRecognizer{}
	adapter := voice.NewAdapter(rec)

	var got error
	require.NoError(t, adapter.Start(context.Background(), nil, func(err error) {
		got = err
	}))
	require.True(t, adapter.Listening())

	fault := errors.New("no-speech")
	rec.onErr(fault)

	assert.Equal(t, fault, got)
	assert.False(t, adapter.Listening())

	// The fault freed the session slot.
	require.NoError(t, adapter.Start(context.Background(), nil, nil))
}

func TestAdapter_StartFailure(t *testing.T) {
	rec := &fakeRecognizer{startErr: errors.New("microphone permission denied")}
	adapter := voice.NewAdapter(rec)

	err := adapter.Start(context.Background(), nil, nil)
	assert.Error(t, err)
	assert.False(t, adapter.Listening())
}
