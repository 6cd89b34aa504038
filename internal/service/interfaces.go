package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

// IssueRepository определяет контракт для работы с бд заявок
type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	ListIssues(ctx context.Context, opts models.ListOptions) ([]*models.Issue, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Issue, error)
	// Delete возвращает пользователей, голосовавших за удаленную заявку
	Delete(ctx context.Context, id, ownerID uuid.UUID) ([]uuid.UUID, error)
	ListMostReported(ctx context.Context, limit int) ([]*models.MostReported, error)

	GetIssueFromCache(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	SetIssueCache(ctx context.Context, issue *models.Issue) error
	InvalidateIssueCache(ctx context.Context, id uuid.UUID) error
	InvalidateVotedCaches(ctx context.Context, userIDs []uuid.UUID) error
}

// VoteRepository определяет контракт для работы с голосами
type VoteRepository interface {
	// InsertVote возвращает актуальный счётчик голосов заявки и признак того, что голос добавлен
	InsertVote(ctx context.Context, vote *models.Vote) (int, bool, error)
	ListVotedIssueIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	GetVotedFromCache(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error)
	SetVotedCache(ctx context.Context, userID uuid.UUID, issueIDs []uuid.UUID) error
	MarkVotedInCache(ctx context.Context, userID, issueID uuid.UUID) error
	InvalidateVotedCache(ctx context.Context, userID uuid.UUID) error
}

// UserRepository определяет контракт для работы с пользователями
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ImageStorage - хранилище фотографий заявок
type ImageStorage interface {
	Upload(ctx context.Context, originalName string, content io.Reader) (string, error)
	PublicURL(objectName string) string
}

// TokenRevoker хранит отозванные сессионные токены
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IssueService определяет контракт чтения и удаления заявок
type IssueService interface {
	ListIssues(ctx context.Context, opts models.ListOptions) models.IssueList
	ListByOwner(ctx context.Context, ownerID uuid.UUID) models.IssueList
	GetIssue(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	DeleteIssue(ctx context.Context, id, ownerID uuid.UUID) error
	MostReported(ctx context.Context, limit int) ([]*models.MostReported, error)
}

// VoteService определяет контракт состояния голосов зрителя
type VoteService interface {
	VotedIssues(ctx context.Context, viewer *models.User) (models.VoteSet, error)
	Upvote(ctx context.Context, viewer *models.User, issueID uuid.UUID) (*models.UpvoteResult, error)
	ForgetViewer(ctx context.Context, userID uuid.UUID) error
}

// ReportService определяет контракт подачи заявки
type ReportService interface {
	SubmitReport(ctx context.Context, viewer *models.User, report models.ReportSubmission) (*models.Issue, error)
}

// AuthService определяет контракт аутентификации
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}
