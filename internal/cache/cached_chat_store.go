package cache

import (
	"context"

	"intelimed/internal/app"
	"intelimed/internal/model"
	"intelimed/internal/observability"
)

// ChatMessageStore serves history reads from redis and falls through to the
// wrapped store on a miss. Redis failures degrade to the wrapped store; they
// never fail a request.
type ChatMessageStore struct {
	inner app.ChatMessageStore
	cache *HistoryCache
}

func NewChatMessageStore(inner app.ChatMessageStore, cache *HistoryCache) *ChatMessageStore {
	return &ChatMessageStore{inner: inner, cache: cache}
}

func (s *ChatMessageStore) AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	if err := s.cache.MarkDirty(ctx, msg.UserID); err != nil {
		observability.LoggerFromContext(ctx).Warn("mark history dirty failed", "user_id", msg.UserID, "error", err)
	}
	if err := s.inner.AppendChatMessage(ctx, msg); err != nil {
		return err
	}
	if err := s.cache.DeleteHistory(ctx, msg.UserID); err != nil {
		observability.LoggerFromContext(ctx).Warn("invalidate history cache failed", "user_id", msg.UserID, "error", err)
	}
	return nil
}

func (s *ChatMessageStore) ListChatMessagesByUser(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	log := observability.LoggerFromContext(ctx)

	dirty, err := s.cache.IsDirty(ctx, userID)
	if err != nil {
		log.Warn("check history dirty marker failed", "user_id", userID, "error", err)
		dirty = true
	}
	if !dirty {
		cached, ok, err := s.cache.GetHistory(ctx, userID)
		if err != nil {
			log.Warn("read history cache failed", "user_id", userID, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	messages, err := s.inner.ListChatMessagesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !dirty {
		if err := s.cache.SetHistory(ctx, userID, messages); err != nil {
			log.Warn("fill history cache failed", "user_id", userID, "error", err)
		}
	}
	return messages, nil
}
