package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mfieldsdev/chatwire/internal/domain"
	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	reply      string
	err        error
	configured bool
	got        []Message
}

func (s *stubProvider) Name() string         { return "stub" }
func (s *stubProvider) DefaultModel() string { return "stub-model" }
func (s *stubProvider) IsConfigured() bool   { return s.configured }

func (s *stubProvider) Complete(ctx context.Context, messages []Message, model string) (*Response, error) {
	s.got = messages
	if s.err != nil {
		return nil, s.err
	}
	return &Response{Content: s.reply, Model: "stub-model"}, nil
}

func newTestGateway(p *stubProvider) *Gateway {
	router := NewRouter("stub")
	router.RegisterProvider(p)
	return NewGateway(router, 5*time.Second)
}

func TestGateway_Reply(t *testing.T) {
	provider := &stubProvider{reply: "hello there", configured: true}
	gw := newTestGateway(provider)

	reply := gw.Reply(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hi"},
	})

	assert.Equal(t, "hello there", reply)
	assert.Len(t, provider.got, 2)
	assert.Equal(t, "system", provider.got[0].Role)
	assert.Equal(t, systemPrompt, provider.got[0].Content)
	assert.Equal(t, "user", provider.got[1].Role)
	assert.Equal(t, "hi", provider.got[1].Content)
}

func TestGateway_WindowsHistory(t *testing.T) {
	provider := &stubProvider{reply: "ok", configured: true}
	gw := newTestGateway(provider)

	history := make([]domain.Message, 0, 15)
	for i := 0; i < 15; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		history = append(history, domain.Message{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}

	gw.Reply(context.Background(), history)

	// system prompt plus the trailing 10 messages, oldest first
	assert.Len(t, provider.got, historyWindow+1)
	assert.Equal(t, "system", provider.got[0].Role)
	assert.Equal(t, "msg-5", provider.got[1].Content)
	assert.Equal(t, "msg-14", provider.got[historyWindow].Content)
}

func TestGateway_FallbackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom"), configured: true}
	gw := newTestGateway(provider)

	reply := gw.Reply(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hi"},
	})

	assert.Equal(t, FallbackReply, reply)
}

func TestGateway_FallbackWhenNotConfigured(t *testing.T) {
	provider := &stubProvider{reply: "never", configured: false}
	gw := newTestGateway(provider)

	reply := gw.Reply(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: "hi"},
	})

	assert.Equal(t, FallbackReply, reply)
}
