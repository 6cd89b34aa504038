package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shenikar/urban_eye/internal/models"
)

const maxTitleRunes = 60

// LeaderboardPDF строит PDF рейтинга заявок в переданном порядке
func LeaderboardPDF(issues []*models.Issue, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Urban Eye leaderboard", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Urban Eye - Issue Leaderboard")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format("Jan 2, 2006 15:04 MST")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total issues: %d", len(issues)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(98, 7, "Title", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Upvotes", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Location", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Reported", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i, issue := range issues {
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(98, 6, tr(truncate(issue.Title, maxTitleRunes)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", issue.Upvotes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.3f, %.3f", issue.Latitude, issue.Longitude), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, issue.CreatedAt.Format("Jan 2, 2006"), "1", 1, "C", false, 0, "")
	}

	buffer := bytes.NewBuffer(nil)
	if err := pdf.Output(buffer); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard pdf: %w", err)
	}
	return buffer.Bytes(), nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
