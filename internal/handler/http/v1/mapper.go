package v1

import (
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/view"
)

// ModelToUserResponse преобразует пользователя в DTO; nil для анонимного зрителя
func ModelToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// IssueListToResponse строит помеченный список карточек
func IssueListToResponse(list models.IssueList, voted models.VoteSet, showUpvote bool, now time.Time) IssueListResponse {
	return IssueListResponse{
		Status: list.Status,
		Reason: list.Reason,
		Issues: view.NewIssueCards(list.Issues, voted, showUpvote, now),
	}
}

// FormToReportSubmission преобразует форму в заявку сервиса
func FormToReportSubmission(form ReportForm, image *models.ImageUpload) models.ReportSubmission {
	submission := models.ReportSubmission{
		Title:       form.Title,
		Description: form.Description,
		Latitude:    parseCoordinate(form.Latitude),
		Longitude:   parseCoordinate(form.Longitude),
		Image:       image,
	}
	if issueType := strings.TrimSpace(form.IssueType); issueType != "" {
		submission.IssueType = &issueType
	}
	return submission
}

// parseCoordinate возвращает nil, если точка не выбрана
func parseCoordinate(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// QueryToListOptions преобразует параметры запроса в опции выборки
func QueryToListOptions(q ListQuery) models.ListOptions {
	opts := models.ListOptions{
		OrderBy:   models.OrderByCreatedAt,
		Ascending: q.Ascending,
		Limit:     q.Limit,
	}
	if q.OrderBy == string(models.OrderByUpvotes) {
		opts.OrderBy = models.OrderByUpvotes
	}
	return opts
}
