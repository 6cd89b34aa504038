package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		opts models.ListOptions
		want string
	}{
		{name: "default newest first", opts: models.ListOptions{}, want: "created_at DESC, id"},
		{name: "upvotes descending", opts: models.ListOptions{OrderBy: models.OrderByUpvotes}, want: "upvotes DESC, created_at DESC, id"},
		{name: "created ascending", opts: models.ListOptions{OrderBy: models.OrderByCreatedAt, Ascending: true}, want: "created_at ASC, id"},
		{name: "unknown falls back", opts: models.ListOptions{OrderBy: "title; DROP TABLE issues"}, want: "created_at DESC, id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.opts))
		})
	}
}

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.Empty(t, pgErrorCode(errors.New("plain")))
}

func TestCacheKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2a7e-3b0d-4d5e-9f21-8a7b6c5d4e3f")
	assert.Equal(t, "issue:6f1c2a7e-3b0d-4d5e-9f21-8a7b6c5d4e3f", issueCacheKey(id))
	assert.Equal(t, "voted:6f1c2a7e-3b0d-4d5e-9f21-8a7b6c5d4e3f", votedCacheKey(id))
}

// recordingHook перехватывает команды до сети и отвечает заданным значением
type recordingHook struct {
	commands [][]interface{}
	reply    int64
}

func (h *recordingHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *recordingHook) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		h.commands = append(h.commands, cmd.Args())
		if c, ok := cmd.(*redis.Cmd); ok {
			c.SetVal(h.reply)
		}
		return nil
	}
}

func (h *recordingHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

// Проверка прогрева и добавление должны уходить в Redis одной командой
func TestMarkVotedInCache_SingleAtomicCommand(t *testing.T) {
	hook := &recordingHook{reply: 1}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })

	repo := &VoteRepository{redisClient: client}
	userID, issueID := uuid.New(), uuid.New()

	require.NoError(t, repo.MarkVotedInCache(context.Background(), userID, issueID))

	require.Len(t, hook.commands, 1)
	args := hook.commands[0]
	assert.Equal(t, "evalsha", args[0])
	assert.Contains(t, args, votedCacheKey(userID))
	assert.Contains(t, args, issueID.String())
}

func TestInvalidateVotedCaches(t *testing.T) {
	hook := &recordingHook{}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })

	repo := &IssueRepository{redisClient: client}
	first, second := uuid.New(), uuid.New()

	// Без проголосовавших в Redis ничего не уходит
	require.NoError(t, repo.InvalidateVotedCaches(context.Background(), nil))
	assert.Empty(t, hook.commands)

	require.NoError(t, repo.InvalidateVotedCaches(context.Background(), []uuid.UUID{first, second}))
	require.Len(t, hook.commands, 1)
	assert.Equal(t, []interface{}{"del", votedCacheKey(first), votedCacheKey(second)}, hook.commands[0])
}
