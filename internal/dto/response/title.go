package response

import (
	"math"
	"time"

	"review-catalog/internal/data/entity"
)

type TitleResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description,omitempty"`
	Category    *CategoryResponse `json:"category"`
	Genres      []GenreResponse   `json:"genre"`
	CreatedAt   time.Time         `json:"created_at"`
}

// RatingFromAverage rounds the average review score to the nearest
// integer, half away from zero. Nil in, nil out: a title without
// reviews has a null rating.
func RatingFromAverage(avg *float64) *int {
	if avg == nil {
		return nil
	}
	rating := int(math.Round(*avg))
	return &rating
}

func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre, avgScore *float64) TitleResponse {
	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      RatingFromAverage(avgScore),
		Description: title.Description,
		Genres:      make([]GenreResponse, len(genres)),
		CreatedAt:   title.CreatedAt,
	}

	if category != nil {
		categoryResp := CategoryToResponse(category)
		resp.Category = &categoryResp
	}

	for i, genre := range genres {
		resp.Genres[i] = GenreToResponse(genre)
	}

	return resp
}
