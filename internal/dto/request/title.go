package request

// Category and genres are referenced by slug, matching the public
// lookup keys of those resources.
type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
	Genres      []string `json:"genre,omitempty" validate:"omitempty,dive,max=50,slug"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50,slug"`
	Genres      []string `json:"genre,omitempty" validate:"omitempty,dive,max=50,slug"`
}

// TitleListFilter is parsed from query parameters on the list endpoint.
type TitleListFilter struct {
	Name     *string
	Category *string
	Genre    *string
	Year     *int
}
