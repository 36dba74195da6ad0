package entity

import (
	"github.com/google/uuid"
)

// Title is a catalog work (book, film, album...). Its rating is never
// stored: it is derived from review scores on every read.
type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}
