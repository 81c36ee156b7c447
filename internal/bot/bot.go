package bot

import (
	"context"

	"chat-assistant/internal/model"
)

// Provider defines the interface for computing a bot reply to a user
// utterance. The rule engine is the only real implementation; keeping the
// seam lets tests substitute a deterministic provider and leaves room for a
// real model behind the same contract.
type Provider interface {
	Reply(ctx context.Context, utterance string, user *model.User) (string, error)
}
