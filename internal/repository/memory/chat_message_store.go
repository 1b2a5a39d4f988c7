package memory

import (
	"context"
	"sort"
	"sync"

	"intelimed/internal/model"
)

type ChatMessageStore struct {
	mu       sync.RWMutex
	messages map[string][]model.ChatMessage
}

func NewChatMessageStore() *ChatMessageStore {
	return &ChatMessageStore{
		messages: make(map[string][]model.ChatMessage),
	}
}

func (s *ChatMessageStore) AppendChatMessage(_ context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[msg.UserID] = append(s.messages[msg.UserID], *msg)
	return nil
}

// ListChatMessagesByUser sorts stably, so equal timestamps keep append order.
func (s *ChatMessageStore) ListChatMessagesByUser(_ context.Context, userID string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	out := append([]model.ChatMessage(nil), s.messages[userID]...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
