package entity

import (
	"github.com/google/uuid"
)

// Review score range. One review per (title, author), enforced by a
// unique constraint in the database.
const (
	MinReviewScore = 1
	MaxReviewScore = 10
)

type Review struct {
	BaseSimple
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    int       `db:"score"`
}
