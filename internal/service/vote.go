package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/webhook"
	"github.com/sirupsen/logrus"
)

type voteService struct {
	votes     VoteRepository
	issues    IssueRepository
	logger    *logrus.Logger
	publisher webhook.EventPublisher
}

func NewVoteService(votes VoteRepository, issues IssueRepository, logger *logrus.Logger, publisher webhook.EventPublisher) VoteService {
	return &voteService{
		votes:     votes,
		issues:    issues,
		logger:    logger,
		publisher: publisher,
	}
}

// VotedIssues возвращает множество заявок, за которые зритель уже голосовал.
// Для анонимного зрителя множество пустое.
func (s *voteService) VotedIssues(ctx context.Context, viewer *models.User) (models.VoteSet, error) {
	if viewer == nil {
		return models.NewVoteSet(), nil
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "vote",
		"method":  "VotedIssues",
		"user_id": viewer.ID,
	})

	ids, found, err := s.votes.GetVotedFromCache(ctx, viewer.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to read voted set from cache")
	}
	if found {
		return models.NewVoteSet(ids...), nil
	}

	ids, err = s.votes.ListVotedIssueIDs(ctx, viewer.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list votes from repository")
		return nil, fmt.Errorf("service: could not list votes: %w", err)
	}

	if err := s.votes.SetVotedCache(ctx, viewer.ID, ids); err != nil {
		log.WithError(err).Warn("Failed to warm voted set cache")
	}
	return models.NewVoteSet(ids...), nil
}

// Upvote переводит пару (зритель, заявка) из NotVoted в Voted. Переход односторонний:
// повторный голос ничего не меняет.
func (s *voteService) Upvote(ctx context.Context, viewer *models.User, issueID uuid.UUID) (*models.UpvoteResult, error) {
	if viewer == nil {
		return nil, ErrAuthRequired
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":  "vote",
		"method":   "Upvote",
		"user_id":  viewer.ID,
		"issue_id": issueID,
	})
	log.Info("Attempting to upvote issue")

	voted, err := s.VotedIssues(ctx, viewer)
	if err != nil {
		return nil, err
	}

	if voted.Has(issueID) {
		issue, err := s.issues.GetByID(ctx, issueID)
		if err != nil {
			log.WithError(err).Warn("Failed to read issue for repeated upvote")
			return nil, fmt.Errorf("service: could not get issue: %w", err)
		}
		log.Info("Viewer already voted, nothing to do")
		return &models.UpvoteResult{IssueID: issueID, Upvotes: issue.Upvotes, Voted: true}, nil
	}

	upvotes, inserted, err := s.votes.InsertVote(ctx, &models.Vote{IssueID: issueID, UserID: viewer.ID})
	if err != nil {
		log.WithError(err).Error("Failed to insert vote in repository")
		return nil, fmt.Errorf("service: could not record vote: %w", err)
	}

	// Оптимистично отмечаем голос у зрителя, даже если он уже был в бд
	if err := s.votes.MarkVotedInCache(ctx, viewer.ID, issueID); err != nil {
		log.WithError(err).Warn("Failed to mark vote in cache")
	}
	if err := s.issues.InvalidateIssueCache(ctx, issueID); err != nil {
		log.WithError(err).Warn("Failed to invalidate issue cache")
	}

	if inserted {
		event := webhook.NewEvent(webhook.EventIssueUpvoted, issueID, viewer.ID)
		event.Upvotes = upvotes
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish upvote event")
		}
	}

	log.WithFields(logrus.Fields{"upvotes": upvotes, "inserted": inserted}).Info("Upvote processed")
	return &models.UpvoteResult{IssueID: issueID, Upvotes: upvotes, Voted: true, Changed: inserted}, nil
}

// ForgetViewer сбрасывает закешированное множество голосов, например после выхода
func (s *voteService) ForgetViewer(ctx context.Context, userID uuid.UUID) error {
	if err := s.votes.InvalidateVotedCache(ctx, userID); err != nil {
		return fmt.Errorf("service: could not forget viewer votes: %w", err)
	}
	return nil
}
