package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return mr
}

func TestConversationStoreAppendAndHistory(t *testing.T) {
	newTestRedis(t)
	store := NewConversationStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", &Message{Role: "user", Mode: "Consulta Geral", Content: "Quais contratos vencem?"}))
	require.NoError(t, store.Append(ctx, "s1", &Message{Role: "assistant", Content: "Nenhum contrato vence nos próximos 45 dias."}))

	msgs, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "user", msgs[0].Role)
	require.Equal(t, "Quais contratos vencem?", msgs[0].Content)
	require.Equal(t, "assistant", msgs[1].Role)
	require.False(t, msgs[0].CreatedAt.IsZero())
}

func TestConversationStoreSessionsAreIsolated(t *testing.T) {
	newTestRedis(t)
	store := NewConversationStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "a", &Message{Role: "user", Content: "pergunta A"}))
	require.NoError(t, store.Append(ctx, "b", &Message{Role: "user", Content: "pergunta B"}))

	msgs, err := store.History(ctx, "a")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "pergunta A", msgs[0].Content)
}

func TestConversationStoreTTL(t *testing.T) {
	mr := newTestRedis(t)
	store := NewConversationStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", &Message{Role: "user", Content: "oi"}))
	require.Equal(t, time.Minute, mr.TTL("conversation:s1"))

	mr.FastForward(2 * time.Minute)
	msgs, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestConversationStoreClear(t *testing.T) {
	newTestRedis(t)
	store := NewConversationStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", &Message{Role: "user", Content: "oi"}))
	require.NoError(t, store.Clear(ctx, "s1"))

	msgs, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestConversationStoreSkipsCorruptEntries(t *testing.T) {
	mr := newTestRedis(t)
	store := NewConversationStore(time.Hour)
	ctx := context.Background()

	mr.RPush("conversation:s1", "not-json")
	require.NoError(t, store.Append(ctx, "s1", &Message{Role: "user", Content: "oi"}))

	msgs, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "oi", msgs[0].Content)
}
