package repository

import (
	"context"
	"encoding/json"
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

const issueColumns = `id, title, description, image_url, issue_type, latitude, longitude, upvotes, created_at, created_by`

type IssueRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIssueRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IssueRepository {
	return &IssueRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую заявку в бд
func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) error {
	query := `
		INSERT INTO issues (title, description, image_url, issue_type, latitude, longitude, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, upvotes, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		issue.Title,
		issue.Description,
		issue.ImageURL,
		issue.IssueType,
		issue.Latitude,
		issue.Longitude,
		issue.CreatedBy,
	).Scan(&issue.ID, &issue.Upvotes, &issue.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

// GetByID возвращает заявку по UUID
func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1;`
	issue, err := scanIssue(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue by id: %w", err)
	}
	return issue, nil
}

// ListIssues возвращает заявки в заданном порядке. Limit 0 - без ограничения.
func (r *IssueRepository) ListIssues(ctx context.Context, opts models.ListOptions) ([]*models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues ORDER BY ` + orderClause(opts) + ` LIMIT $1;`

	var limit *int
	if opts.Limit > 0 {
		limit = &opts.Limit
	}

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return collectIssues(rows)
}

// ListByOwner возвращает заявки автора, новые первыми
func (r *IssueRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues WHERE created_by = $1 ORDER BY created_at DESC, id;`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner issues: %w", err)
	}
	return collectIssues(rows)
}

// Delete удаляет заявку, только если она принадлежит ownerID, и возвращает проголосовавших.
// Голоса удаляются каскадом.
func (r *IssueRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// FOR UPDATE не пускает новые голоса до конца транзакции
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM issues WHERE id = $1 AND created_by = $2 FOR UPDATE;`, id, ownerID).Scan(&lockedID)
	if err != nil {
		// Чужая и несуществующая заявка для вызывающего неразличимы
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to lock issue: %w", err)
	}

	rows, err := tx.Query(ctx, `SELECT user_id FROM votes WHERE issue_id = $1;`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query issue voters: %w", err)
	}
	voters, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to collect issue voters: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM issues WHERE id = $1;`, id); err != nil {
		return nil, fmt.Errorf("failed to delete issue: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return voters, nil
}

// ListMostReported читает представление most_reported_issues
func (r *IssueRepository) ListMostReported(ctx context.Context, limit int) ([]*models.MostReported, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := r.db.Query(ctx, `SELECT issue_type, report_count FROM most_reported_issues LIMIT $1;`, lim)
	if err != nil {
		return nil, fmt.Errorf("failed to read most reported issues: %w", err)
	}
	defer rows.Close()

	result := make([]*models.MostReported, 0)
	for rows.Next() {
		row := &models.MostReported{}
		if err := rows.Scan(&row.IssueType, &row.ReportCount); err != nil {
			return nil, fmt.Errorf("failed to scan most reported row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error most reported iteration: %w", err)
	}
	return result, nil
}

// GetIssueFromCache пытается получить заявку из Redis. Промах кеша - (nil, nil).
func (r *IssueRepository) GetIssueFromCache(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	val, err := r.redisClient.Get(ctx, issueCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get issue from cache: %w", err)
	}

	issue := &models.Issue{}
	if err := json.Unmarshal(val, issue); err != nil {
		return nil, fmt.Errorf("failed to unmarshal issue from cache: %w", err)
	}
	return issue, nil
}

// SetIssueCache сохраняет заявку в Redis
func (r *IssueRepository) SetIssueCache(ctx context.Context, issue *models.Issue) error {
	val, err := json.Marshal(issue)
	if err != nil {
		return fmt.Errorf("failed to marshal issue for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, issueCacheKey(issue.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set issue in cache: %w", err)
	}
	return nil
}

// InvalidateIssueCache удаляет заявку из кеша
func (r *IssueRepository) InvalidateIssueCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, issueCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate issue cache: %w", err)
	}
	return nil
}

// InvalidateVotedCaches сбрасывает множества голосов пользователей, чтобы удаленная заявка
// не оставалась в них до истечения TTL
func (r *IssueRepository) InvalidateVotedCaches(ctx context.Context, userIDs []uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, votedCacheKey(id))
	}
	if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate voted caches: %w", err)
	}
	return nil
}

func issueCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("issue:%s", id.String())
}

// orderClause строит ORDER BY только из известных полей
func orderClause(opts models.ListOptions) string {
	column := "created_at"
	if opts.OrderBy == models.OrderByUpvotes {
		column = "upvotes"
	}
	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}
	// при равных значениях порядок стабилен
	if column == "upvotes" {
		return fmt.Sprintf("upvotes %s, created_at DESC, id", direction)
	}
	return fmt.Sprintf("created_at %s, id", direction)
}

func scanIssue(row pgx.Row) (*models.Issue, error) {
	issue := &models.Issue{}
	err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.ImageURL,
		&issue.IssueType,
		&issue.Latitude,
		&issue.Longitude,
		&issue.Upvotes,
		&issue.CreatedAt,
		&issue.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return issue, nil
}

func collectIssues(rows pgx.Rows) ([]*models.Issue, error) {
	defer rows.Close()

	issues := make([]*models.Issue, 0)
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return issues, nil
}
