package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/service"
)

// votedSentinel хранится в множестве всегда, чтобы пустой прогретый кеш отличался от промаха
const votedSentinel = "-"

type VoteRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewVoteRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.VoteRepository {
	return &VoteRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// InsertVote записывает голос и увеличивает счётчик в одной транзакции.
// Повторный голос ничего не меняет; возвращается текущий счётчик из бд.
func (r *VoteRepository) InsertVote(ctx context.Context, vote *models.Vote) (int, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmdTag, err := tx.Exec(ctx, `
		INSERT INTO votes (issue_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (issue_id, user_id) DO NOTHING;
	`, vote.IssueID, vote.UserID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, false, models.ErrIssueNotFound
		}
		return 0, false, fmt.Errorf("failed to insert vote: %w", err)
	}
	inserted := cmdTag.RowsAffected() == 1

	var upvotes int
	if inserted {
		err = tx.QueryRow(ctx, `UPDATE issues SET upvotes = upvotes + 1 WHERE id = $1 RETURNING upvotes;`, vote.IssueID).Scan(&upvotes)
	} else {
		err = tx.QueryRow(ctx, `SELECT upvotes FROM issues WHERE id = $1;`, vote.IssueID).Scan(&upvotes)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, models.ErrIssueNotFound
		}
		return 0, false, fmt.Errorf("failed to update upvotes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, fmt.Errorf("failed to commit vote: %w", err)
	}
	return upvotes, inserted, nil
}

// ListVotedIssueIDs возвращает заявки, за которые голосовал пользователь
func (r *VoteRepository) ListVotedIssueIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT issue_id FROM votes WHERE user_id = $1;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan vote rows: %w", err)
	}
	return ids, nil
}

// GetVotedFromCache читает множество голосов из Redis. found == false - промах.
func (r *VoteRepository) GetVotedFromCache(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	members, err := r.redisClient.SMembers(ctx, votedCacheKey(userID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get voted set from cache: %w", err)
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		if m == votedSentinel {
			continue
		}
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, false, fmt.Errorf("malformed voted cache member %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

// SetVotedCache заменяет множество голосов в Redis
func (r *VoteRepository) SetVotedCache(ctx context.Context, userID uuid.UUID, issueIDs []uuid.UUID) error {
	key := votedCacheKey(userID)
	members := make([]any, 0, len(issueIDs)+1)
	members = append(members, votedSentinel)
	for _, id := range issueIDs {
		members = append(members, id.String())
	}

	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, r.cacheTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set voted cache: %w", err)
	}
	return nil
}

// markVotedScript проверяет наличие ключа и добавляет элемент за одну операцию.
// Если ключ истек между проверкой и SADD, получилось бы множество без сентинела.
var markVotedScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return redis.call('SADD', KEYS[1], ARGV[1])
end
return 0
`)

// MarkVotedInCache добавляет голос в уже прогретое множество. Без прогрева ничего не делает.
func (r *VoteRepository) MarkVotedInCache(ctx context.Context, userID, issueID uuid.UUID) error {
	err := markVotedScript.Run(ctx, r.redisClient, []string{votedCacheKey(userID)}, issueID.String()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to mark vote in cache: %w", err)
	}
	return nil
}

// InvalidateVotedCache удаляет множество голосов пользователя
func (r *VoteRepository) InvalidateVotedCache(ctx context.Context, userID uuid.UUID) error {
	if err := r.redisClient.Del(ctx, votedCacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate voted cache: %w", err)
	}
	return nil
}

func votedCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("voted:%s", userID.String())
}
