package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/webhook"
	"github.com/sirupsen/logrus"
)

type issueService struct {
	repo      IssueRepository
	logger    *logrus.Logger
	publisher webhook.EventPublisher
}

func NewIssueService(repo IssueRepository, logger *logrus.Logger, publisher webhook.EventPublisher) IssueService {
	return &issueService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

// ListIssues возвращает заявки в заданном порядке. Ошибка чтения не теряется, а попадает в результат.
func (s *issueService) ListIssues(ctx context.Context, opts models.ListOptions) models.IssueList {
	if opts.OrderBy != models.OrderByUpvotes {
		opts.OrderBy = models.OrderByCreatedAt
	}
	if opts.Limit < 0 {
		opts.Limit = 0
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "issue",
		"method":    "ListIssues",
		"order_by":  opts.OrderBy,
		"ascending": opts.Ascending,
		"limit":     opts.Limit,
	})
	log.Info("Listing issues")

	issues, err := s.repo.ListIssues(ctx, opts)
	if err != nil {
		log.WithError(err).Error("Failed to list issues from repository")
		return models.NewIssueList(nil, fmt.Errorf("service: could not list issues: %w", err))
	}

	log.WithField("count", len(issues)).Info("Issues listed successfully")
	return models.NewIssueList(issues, nil)
}

// ListByOwner возвращает заявки автора, новые первыми
func (s *issueService) ListByOwner(ctx context.Context, ownerID uuid.UUID) models.IssueList {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "issue",
		"method":   "ListByOwner",
		"owner_id": ownerID,
	})
	log.Info("Listing owner issues")

	issues, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		log.WithError(err).Error("Failed to list owner issues from repository")
		return models.NewIssueList(nil, fmt.Errorf("service: could not list owner issues: %w", err))
	}

	log.WithField("count", len(issues)).Info("Owner issues listed successfully")
	return models.NewIssueList(issues, nil)
}

// GetIssue получает заявку по ID, сначала из кеша
func (s *issueService) GetIssue(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "issue",
		"method":   "GetIssue",
		"issue_id": id,
	})

	cached, err := s.repo.GetIssueFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read issue from cache")
	}
	if cached != nil {
		log.Debug("Issue served from cache")
		return cached, nil
	}

	issue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get issue from repository")
		return nil, fmt.Errorf("service: could not get issue: %w", err)
	}

	if err := s.repo.SetIssueCache(ctx, issue); err != nil {
		log.WithError(err).Warn("Failed to cache issue")
	}
	return issue, nil
}

// DeleteIssue удаляет заявку. Право владельца проверяет само хранилище.
func (s *issueService) DeleteIssue(ctx context.Context, id, ownerID uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "issue",
		"method":   "DeleteIssue",
		"issue_id": id,
		"owner_id": ownerID,
	})
	log.Info("Attempting to delete issue")

	voters, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		log.WithError(err).Warn("Failed to delete issue in repository")
		return fmt.Errorf("service: could not delete issue: %w", err)
	}

	if err := s.repo.InvalidateIssueCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate issue cache")
	}
	if err := s.repo.InvalidateVotedCaches(ctx, voters); err != nil {
		log.WithError(err).WithField("voters", len(voters)).Warn("Failed to invalidate voted caches")
	}

	event := webhook.NewEvent(webhook.EventIssueDeleted, id, ownerID)
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish issue deleted event")
	}

	log.Info("Issue deleted successfully")
	return nil
}

// MostReported возвращает самые частые типы проблем
func (s *issueService) MostReported(ctx context.Context, limit int) ([]*models.MostReported, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "issue",
		"method":  "MostReported",
		"limit":   limit,
	})

	rows, err := s.repo.ListMostReported(ctx, limit)
	if err != nil {
		log.WithError(err).Error("Failed to read most reported issues")
		return nil, fmt.Errorf("service: could not read most reported issues: %w", err)
	}
	return rows, nil
}
