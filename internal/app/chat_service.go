package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intelimed/internal/ai"
	"intelimed/internal/model"
	"intelimed/internal/persona"
)

// HistoryWindow is how many stored turns the orchestrator hands to the
// Responder, which trims further to PromptHistoryLimit.
const HistoryWindow = 10

type ChatService struct {
	messages  ChatMessageStore
	users     UserStore
	responder *Responder
	now       func() time.Time
}

type SendMessageInput struct {
	UserID  string
	Message string
	Persona string
}

type SendMessageResult struct {
	UserMessage model.ChatMessage `json:"userMessage"`
	AIMessage   model.ChatMessage `json:"aiMessage"`
	Confidence  float64           `json:"confidence"`
}

// NewChatService wires the orchestrator. users may be nil, in which case the
// profile persona fallback is skipped.
func NewChatService(messages ChatMessageStore, users UserStore, responder *Responder) *ChatService {
	return &ChatService{
		messages:  messages,
		users:     users,
		responder: responder,
		now:       time.Now,
	}
}

// SendMessage persists the user turn, builds context from the stored
// history, generates a reply and persists it. Only storage faults surface as
// errors; the empty message is accepted as-is.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*SendMessageResult, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	p, err := s.resolvePersona(ctx, userID, input.Persona)
	if err != nil {
		return nil, err
	}

	userMessage := &model.ChatMessage{
		ID:        model.NewID(),
		UserID:    userID,
		Message:   input.Message,
		IsUser:    true,
		Persona:   p.String(),
		Timestamp: s.now(),
	}
	if err := s.messages.AppendChatMessage(ctx, userMessage); err != nil {
		return nil, err
	}

	stored, err := s.messages.ListChatMessagesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	history := toPromptHistory(lastN(stored, HistoryWindow))

	reply := s.responder.Generate(ctx, input.Message, p, history)

	aiMessage := &model.ChatMessage{
		ID:        model.NewID(),
		UserID:    userID,
		Message:   reply.Message,
		IsUser:    false,
		Persona:   p.String(),
		Timestamp: s.now(),
	}
	if err := s.messages.AppendChatMessage(ctx, aiMessage); err != nil {
		return nil, err
	}

	return &SendMessageResult{
		UserMessage: *userMessage,
		AIMessage:   *aiMessage,
		Confidence:  reply.Confidence,
	}, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	messages, err := s.messages.ListChatMessagesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	return messages, nil
}

// resolvePersona prefers the request, then the user's profile, then general.
func (s *ChatService) resolvePersona(ctx context.Context, userID, requested string) (persona.Persona, error) {
	if strings.TrimSpace(requested) != "" || s.users == nil {
		return persona.Parse(requested), nil
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user profile failed: %w", err)
	}
	if user == nil {
		return persona.General, nil
	}
	return persona.Parse(user.Persona), nil
}

func toPromptHistory(messages []model.ChatMessage) []ai.ChatMessage {
	out := make([]ai.ChatMessage, 0, len(messages))
	for _, item := range messages {
		out = append(out, ai.ChatMessage{
			Role:    item.Role(),
			Content: item.Message,
		})
	}
	return out
}
