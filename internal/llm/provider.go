package llm

import "context"

// Message is one role-tagged entry submitted to a completion provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response contains the provider's reply
type Response struct {
	Content   string
	Model     string
	LatencyMs int64
}

// Provider defines the interface for chat-completion providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete submits an ordered message list and returns one reply
	Complete(ctx context.Context, messages []Message, model string) (*Response, error)
}
