package redis

import (
	"context"
	"encoding/json"
	"time"
)

// Message is one entry of an assistant conversation
type Message struct {
	Role      string    `json:"role"`
	Mode      string    `json:"mode,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationStore keeps per-session assistant history in a Redis list.
// Each session expires after the configured TTL of inactivity.
type ConversationStore struct {
	ttl time.Duration
}

var (
	pushConversationValue  = RPush
	rangeConversationValue = LRange
	expireConversationKey  = Expire
	delConversationKey     = Del
)

// NewConversationStore creates a new conversation store
func NewConversationStore(ttl time.Duration) *ConversationStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ConversationStore{ttl: ttl}
}

func (s *ConversationStore) key(sessionID string) string {
	return "conversation:" + sessionID
}

// Append pushes one message and refreshes the session TTL
func (s *ConversationStore) Append(ctx context.Context, sessionID string, msg *Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := pushConversationValue(ctx, s.key(sessionID), data); err != nil {
		return err
	}
	return expireConversationKey(ctx, s.key(sessionID), s.ttl)
}

// History returns the conversation, oldest first. Entries that fail to
// decode are skipped.
func (s *ConversationStore) History(ctx context.Context, sessionID string) ([]*Message, error) {
	raw, err := rangeConversationValue(ctx, s.key(sessionID), 0, -1)
	if err != nil {
		return nil, err
	}
	msgs := make([]*Message, 0, len(raw))
	for _, r := range raw {
		var m Message
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			continue
		}
		msgs = append(msgs, &m)
	}
	return msgs, nil
}

// Clear drops the conversation
func (s *ConversationStore) Clear(ctx context.Context, sessionID string) error {
	return delConversationKey(ctx, s.key(sessionID))
}
