package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Vote - голос пользователя за заявку. Пара (IssueID, UserID) уникальна.
type Vote struct {
	IssueID   uuid.UUID `json:"issue_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteSet - множество заявок, за которые зритель уже проголосовал
type VoteSet map[uuid.UUID]struct{}

// NewVoteSet строит множество из списка идентификаторов
func NewVoteSet(ids ...uuid.UUID) VoteSet {
	set := make(VoteSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s VoteSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s VoteSet) Add(id uuid.UUID) {
	s[id] = struct{}{}
}

// IDs возвращает идентификаторы в стабильном порядке
func (s VoteSet) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// UpvoteResult - итог попытки проголосовать
type UpvoteResult struct {
	IssueID uuid.UUID `json:"issue_id"`
	Upvotes int       `json:"upvotes"`
	Voted   bool      `json:"voted"`
	Changed bool      `json:"changed"`
}
