package llm

import (
	"context"
	"time"

	"github.com/mfieldsdev/chatwire/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	// FallbackReply is returned when the completion provider fails for any
	// reason. The chat flow never hard-fails because the provider is down;
	// the fallback is recorded as a normal assistant message instead.
	FallbackReply = "Sorry, something went wrong with the AI."

	systemPrompt = "You are a helpful AI assistant."

	// historyWindow bounds how many trailing messages are forwarded
	historyWindow = 10
)

// Gateway forwards a chat's message log to a completion provider and
// normalizes every failure into the fixed fallback reply.
type Gateway struct {
	router  *Router
	timeout time.Duration
}

// NewGateway creates a new completion gateway
func NewGateway(router *Router, timeout time.Duration) *Gateway {
	return &Gateway{
		router:  router,
		timeout: timeout,
	}
}

// Reply submits the most recent messages to the default provider and
// returns its reply text. On any failure it logs for operators and returns
// FallbackReply; it never returns an error.
func (g *Gateway) Reply(ctx context.Context, history []domain.Message) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	provider, err := g.router.GetProvider("")
	if err != nil {
		log.Error().Err(err).Msg("AI error: no completion provider")
		return FallbackReply
	}

	resp, err := provider.Complete(ctx, buildMessages(history), "")
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("AI error")
		return FallbackReply
	}

	log.Debug().
		Str("provider", provider.Name()).
		Str("model", resp.Model).
		Int64("latency_ms", resp.LatencyMs).
		Msg("completion received")

	return resp.Content
}

// buildMessages truncates the log to the trailing window, preserving
// oldest-first order, and prepends the fixed system instruction.
func buildMessages(history []domain.Message) []Message {
	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}

	messages := make([]Message, 0, len(recent)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	for _, m := range recent {
		messages = append(messages, Message{Role: string(m.Role), Content: m.Content})
	}
	return messages
}
