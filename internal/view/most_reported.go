package view

import (
	"github.com/dustin/go-humanize"
	"github.com/shenikar/urban_eye/internal/models"
)

// MostReportedBar - строка диаграммы самых частых проблем
type MostReportedBar struct {
	Rank        int     `json:"rank"`
	IssueType   string  `json:"issue_type"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	ReportCount int     `json:"report_count"`
	Label       string  `json:"label"`
	Percentage  float64 `json:"percentage"`
}

// NewMostReportedBars переводит строки агрегата в полосы относительно первой (самой частой) строки.
// Типы, которых нет в справочнике, пропускаются, но место в рейтинге сохраняют.
func NewMostReportedBars(rows []*models.MostReported) []MostReportedBar {
	bars := make([]MostReportedBar, 0, len(rows))
	if len(rows) == 0 {
		return bars
	}

	maxCount := rows[0].ReportCount
	if maxCount <= 0 {
		maxCount = 1
	}

	for i, row := range rows {
		issueType, ok := models.FindIssueType(row.IssueType)
		if !ok {
			continue
		}
		bars = append(bars, MostReportedBar{
			Rank:        i + 1,
			IssueType:   issueType.ID,
			Name:        issueType.Name,
			Icon:        issueType.Icon,
			ReportCount: row.ReportCount,
			Label:       reportsLabel(row.ReportCount),
			Percentage:  float64(row.ReportCount) / float64(maxCount) * 100,
		})
	}
	return bars
}

func reportsLabel(n int) string {
	if n == 1 {
		return "1 report"
	}
	return humanize.Comma(int64(n)) + " reports"
}
