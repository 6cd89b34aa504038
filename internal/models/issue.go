package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrIssueNotFound возвращается, когда обращение ведётся к несуществующей заявке
	ErrIssueNotFound = errors.New("issue not found")
)

// Issue - заявка жителя о городской проблеме
type Issue struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IssueType   *string   `json:"issue_type,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Upvotes     int       `json:"upvotes"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   uuid.UUID `json:"created_by"`
}

// OrderBy - поле сортировки списка заявок
type OrderBy string

const (
	OrderByUpvotes   OrderBy = "upvotes"
	OrderByCreatedAt OrderBy = "created_at"
)

// ListOptions задаёт порядок и ограничение выборки заявок. Limit == 0 означает "без ограничения".
type ListOptions struct {
	OrderBy   OrderBy
	Ascending bool
	Limit     int
}

// ListStatus - результат чтения списка
type ListStatus string

const (
	ListOK     ListStatus = "ok"
	ListEmpty  ListStatus = "empty"
	ListFailed ListStatus = "failed"
)

// IssueList - помеченный результат чтения: строки, пустой список или ошибка с причиной
type IssueList struct {
	Status ListStatus `json:"status"`
	Issues []*Issue   `json:"issues"`
	Reason string     `json:"reason,omitempty"`
}

// NewIssueList строит результат по ответу хранилища
func NewIssueList(issues []*Issue, err error) IssueList {
	if err != nil {
		return IssueList{Status: ListFailed, Issues: []*Issue{}, Reason: err.Error()}
	}
	if len(issues) == 0 {
		return IssueList{Status: ListEmpty, Issues: []*Issue{}}
	}
	return IssueList{Status: ListOK, Issues: issues}
}

// Failed сообщает, завершилось ли чтение ошибкой
func (l IssueList) Failed() bool {
	return l.Status == ListFailed
}
