package view

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
)

const dateLayout = "Jan 2, 2006"

// IssueCard - карточка заявки в том виде, в каком ее показывает клиент
type IssueCard struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IssueType   *string   `json:"issue_type,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Coordinates string    `json:"coordinates"`
	Date        string    `json:"date"`
	Age         string    `json:"age"`
	Upvotes     int       `json:"upvotes"`
	ShowUpvote  bool      `json:"show_upvote"`
	HasUpvoted  bool      `json:"has_upvoted"`
	UpvoteLabel string    `json:"upvote_label,omitempty"`
	Disabled    bool      `json:"disabled"`
}

// NewIssueCard строит карточку. Кнопка голоса недоступна, если зритель уже голосовал.
func NewIssueCard(issue *models.Issue, hasUpvoted, showUpvote bool, now time.Time) IssueCard {
	card := IssueCard{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		ImageURL:    issue.ImageURL,
		IssueType:   issue.IssueType,
		Latitude:    issue.Latitude,
		Longitude:   issue.Longitude,
		Coordinates: fmt.Sprintf("%.4f, %.4f", issue.Latitude, issue.Longitude),
		Date:        issue.CreatedAt.Format(dateLayout),
		Age:         humanize.RelTime(issue.CreatedAt, now, "ago", "from now"),
		Upvotes:     issue.Upvotes,
		ShowUpvote:  showUpvote,
		HasUpvoted:  hasUpvoted,
	}
	if showUpvote {
		label := "Upvote"
		if hasUpvoted {
			label = "Upvoted"
		}
		card.UpvoteLabel = fmt.Sprintf("%s (%d)", label, issue.Upvotes)
		card.Disabled = hasUpvoted
	}
	return card
}

// NewIssueCards строит карточки списка с учетом голосов зрителя
func NewIssueCards(issues []*models.Issue, voted models.VoteSet, showUpvote bool, now time.Time) []IssueCard {
	cards := make([]IssueCard, 0, len(issues))
	for _, issue := range issues {
		cards = append(cards, NewIssueCard(issue, voted.Has(issue.ID), showUpvote, now))
	}
	return cards
}
