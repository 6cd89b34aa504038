package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardPDF(t *testing.T) {
	issues := []*models.Issue{
		{ID: uuid.New(), Title: "Open manhole near school", Upvotes: 12, Latitude: 12.97, Longitude: 77.59, CreatedAt: time.Now()},
		{ID: uuid.New(), Title: "Café sign fell on footpath", Upvotes: 3, Latitude: 12.91, Longitude: 77.61, CreatedAt: time.Now()},
	}

	out, err := LeaderboardPDF(issues, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestLeaderboardPDF_Empty(t *testing.T) {
	out, err := LeaderboardPDF(nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("a", 20)
	assert.Equal(t, strings.Repeat("a", 7)+"...", truncate(long, 10))
}
