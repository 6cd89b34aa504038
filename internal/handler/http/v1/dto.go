package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/urban_eye/internal/mapview"
	"github.com/shenikar/urban_eye/internal/models"
	"github.com/shenikar/urban_eye/internal/view"
)

// RegisterRequest DTO для регистрации
// @Description DTO для регистрации
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest DTO для входа
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ReportForm - поля multipart-формы подачи заявки
type ReportForm struct {
	Title       string `form:"title" validate:"max=200"`
	Description string `form:"description" validate:"max=5000"`
	IssueType   string `form:"issue_type" validate:"omitempty,max=50"`
	Latitude    string `form:"latitude" validate:"omitempty,latitude"`
	Longitude   string `form:"longitude" validate:"omitempty,longitude"`
}

// ListQuery - параметры запроса списка заявок
type ListQuery struct {
	OrderBy   string `form:"order_by" validate:"omitempty,oneof=upvotes created_at"`
	Ascending bool   `form:"ascending"`
	Limit     int    `form:"limit" validate:"gte=0"`
}

// UserResponse DTO пользователя сессии
// @Description DTO пользователя сессии
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse DTO ответа на вход
// @Description DTO ответа на вход
type SessionResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// Toast - короткое уведомление для клиента
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ErrorResponse DTO ошибки
// @Description DTO ошибки
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// IssueListResponse DTO помеченного списка заявок
// @Description DTO помеченного списка заявок: ok, empty или failed с причиной
type IssueListResponse struct {
	Status models.ListStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
	Issues []view.IssueCard  `json:"issues"`
}

// IssueCardResponse DTO одной карточки
// @Description DTO одной карточки
type IssueCardResponse struct {
	Issue view.IssueCard `json:"issue"`
	Toast *Toast         `json:"toast,omitempty"`
}

// UpvoteResponse DTO результата голосования
// @Description DTO результата голосования
type UpvoteResponse struct {
	IssueID uuid.UUID      `json:"issue_id"`
	Upvotes int            `json:"upvotes"`
	Changed bool           `json:"changed"`
	Issue   view.IssueCard `json:"issue"`
	Toast   *Toast         `json:"toast,omitempty"`
}

// ReportCreatedResponse DTO созданной заявки
// @Description DTO созданной заявки
type ReportCreatedResponse struct {
	Issue    view.IssueCard `json:"issue"`
	Redirect string         `json:"redirect"`
	Toast    Toast          `json:"toast"`
}

// DeleteResponse DTO удаления: обновленный список заявок автора
// @Description DTO удаления
type DeleteResponse struct {
	MyReports IssueListResponse `json:"my_reports"`
	Toast     Toast             `json:"toast"`
}

// VotesResponse DTO голосов зрителя
// @Description DTO голосов зрителя
type VotesResponse struct {
	IssueIDs []uuid.UUID `json:"issue_ids"`
}

// HomePageResponse DTO главной страницы
// @Description DTO главной страницы
type HomePageResponse struct {
	Viewer       *UserResponse          `json:"viewer"`
	TopIssues    IssueListResponse      `json:"top_issues"`
	MostReported []view.MostReportedBar `json:"most_reported"`
}

// LeaderboardPageResponse DTO рейтинга
// @Description DTO рейтинга
type LeaderboardPageResponse struct {
	Viewer *UserResponse     `json:"viewer"`
	Issues IssueListResponse `json:"issues"`
}

// MyReportsPageResponse DTO страницы заявок автора
// @Description DTO страницы заявок автора
type MyReportsPageResponse struct {
	Viewer UserResponse      `json:"viewer"`
	Issues IssueListResponse `json:"issues"`
}

// LibraryPageResponse DTO справочника проблем
// @Description DTO справочника проблем
type LibraryPageResponse struct {
	Viewer     *UserResponse      `json:"viewer"`
	IssueTypes []models.IssueType `json:"issue_types"`
}

// ReportPageResponse DTO формы подачи заявки
// @Description DTO формы подачи заявки
type ReportPageResponse struct {
	Viewer      UserResponse   `json:"viewer"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IssueType   string         `json:"issue_type,omitempty"`
	MapCenter   mapview.LngLat `json:"map_center"`
	MapZoom     float64        `json:"map_zoom"`
	MapStyle    string         `json:"map_style"`
}

// MapPageResponse DTO карты
// @Description DTO карты
type MapPageResponse struct {
	Viewer *UserResponse     `json:"viewer"`
	Status models.ListStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
	Layer  *mapview.Layer    `json:"layer,omitempty"`
}
