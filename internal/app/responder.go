package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intelimed/internal/ai"
	"intelimed/internal/observability"
	"intelimed/internal/persona"
)

const (
	// PromptHistoryLimit is how many history entries end up in the prompt,
	// whatever the caller passes in.
	PromptHistoryLimit = 5

	replyConfidence    = 0.8
	degradedConfidence = 0.1
)

const (
	EmptyReplyMessage    = "I apologize, but I'm having trouble processing your request right now. Please try again or contact our support team."
	DegradedReplyMessage = "I'm experiencing some technical difficulties. Please try again in a moment, or if this is urgent, please call our emergency number 108."
)

// LLMClient is the upstream text-generation service.
type LLMClient interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
	CompleteJSON(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage, schema ai.JSONSchema) (string, error)
}

type Reply struct {
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// Responder turns a user message into an assistant reply. It never fails:
// upstream problems become the degraded reply.
type Responder struct {
	client  LLMClient
	cfg     ai.ChatConfig
	timeout time.Duration
}

func NewResponder(client LLMClient, cfg ai.ChatConfig, timeout time.Duration) *Responder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Responder{client: client, cfg: cfg, timeout: timeout}
}

func (r *Responder) Generate(ctx context.Context, userMessage string, p persona.Persona, history []ai.ChatMessage) Reply {
	prompt := BuildChatPrompt(p, history, userMessage)

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.client.Complete(callCtx, r.cfg, []ai.ChatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("chat generation failed",
			"model", r.cfg.Model,
			"persona", p.String(),
			"error", err,
		)
		return Reply{Message: DegradedReplyMessage, Confidence: degradedConfidence}
	}
	if strings.TrimSpace(text) == "" {
		text = EmptyReplyMessage
	}
	return Reply{Message: text, Confidence: replyConfidence}
}

// BuildChatPrompt renders persona instructions, the last PromptHistoryLimit
// history entries and the current message into one prompt.
func BuildChatPrompt(p persona.Persona, history []ai.ChatMessage, userMessage string) string {
	recent := lastN(history, PromptHistoryLimit)
	lines := make([]string, 0, len(recent))
	for _, item := range recent {
		lines = append(lines, item.Role+": "+item.Content)
	}

	return fmt.Sprintf(`%s

Previous conversation:
%s

Current user message: %s

Please respond in character for the %s persona, providing helpful healthcare guidance while being empathetic and appropriate for the user type.`,
		p.Instructions(),
		strings.Join(lines, "\n"),
		userMessage,
		p,
	)
}

func lastN[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[len(items)-limit:]
}
