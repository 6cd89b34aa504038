package view

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssue(upvotes int) *models.Issue {
	return &models.Issue{
		ID:          uuid.New(),
		Title:       "Broken streetlight",
		Description: "Dark corner near the bus stop",
		Latitude:    12.971598,
		Longitude:   77.594566,
		Upvotes:     upvotes,
		CreatedAt:   time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC),
	}
}

func TestNewIssueCard_NotVoted(t *testing.T) {
	now := time.Date(2024, time.March, 8, 18, 30, 0, 0, time.UTC)
	card := NewIssueCard(testIssue(3), false, true, now)

	assert.Equal(t, "12.9716, 77.5946", card.Coordinates)
	assert.Equal(t, "Mar 5, 2024", card.Date)
	assert.Equal(t, "3 days ago", card.Age)
	assert.Equal(t, "Upvote (3)", card.UpvoteLabel)
	assert.False(t, card.Disabled)
}

func TestNewIssueCard_Voted(t *testing.T) {
	card := NewIssueCard(testIssue(4), true, true, time.Now())

	assert.True(t, card.HasUpvoted)
	assert.True(t, card.Disabled)
	assert.Equal(t, "Upvoted (4)", card.UpvoteLabel)
}

func TestNewIssueCard_HiddenUpvote(t *testing.T) {
	card := NewIssueCard(testIssue(4), true, false, time.Now())

	assert.False(t, card.ShowUpvote)
	assert.Empty(t, card.UpvoteLabel)
	assert.False(t, card.Disabled)
}

func TestNewIssueCards_UsesVoteSet(t *testing.T) {
	a, b := testIssue(1), testIssue(2)
	cards := NewIssueCards([]*models.Issue{a, b}, models.NewVoteSet(b.ID), true, time.Now())

	require.Len(t, cards, 2)
	assert.False(t, cards[0].HasUpvoted)
	assert.True(t, cards[1].HasUpvoted)
}

func TestNewMostReportedBars(t *testing.T) {
	rows := []*models.MostReported{
		{IssueType: "pothole", ReportCount: 8},
		{IssueType: "alien-landing", ReportCount: 6},
		{IssueType: "garbage", ReportCount: 2},
		{IssueType: "flooding", ReportCount: 1},
	}

	bars := NewMostReportedBars(rows)
	require.Len(t, bars, 3)

	assert.Equal(t, 1, bars[0].Rank)
	assert.Equal(t, "Pothole", bars[0].Name)
	assert.InDelta(t, 100.0, bars[0].Percentage, 0.001)
	assert.Equal(t, "8 reports", bars[0].Label)

	assert.Equal(t, 3, bars[1].Rank)
	assert.Equal(t, "garbage", bars[1].IssueType)
	assert.InDelta(t, 25.0, bars[1].Percentage, 0.001)

	assert.Equal(t, "1 report", bars[2].Label)
}

func TestNewMostReportedBars_Empty(t *testing.T) {
	assert.Empty(t, NewMostReportedBars(nil))
}
