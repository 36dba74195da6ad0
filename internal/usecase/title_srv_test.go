package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type titleFixture struct {
	srv     TitleService
	titles  *fakeTitleRepo
	reviews *fakeReviewRepo
}

func newTitleFixture() *titleFixture {
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Books",
		Slug:       "books",
	}
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Science Fiction",
		Slug:       "sci-fi",
	}

	genreRepo := newFakeGenreRepo(genre)
	titleRepo := newFakeTitleRepo()
	reviewRepo := newFakeReviewRepo()

	repo := &repository.Repository{
		User:       newFakeUserRepo(),
		Category:   newFakeCategoryRepo(category),
		Genre:      genreRepo,
		Title:      titleRepo,
		TitleGenre: &fakeTitleGenreRepo{genres: genreRepo},
		Review:     reviewRepo,
	}

	return &titleFixture{
		srv:     NewTitleService(repo, zap.NewNop()),
		titles:  titleRepo,
		reviews: reviewRepo,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateTitleWithCategoryAndGenres(t *testing.T) {
	f := newTitleFixture()

	resp, err := f.srv.CreateTitle(context.Background(), &request.CreateTitleRequest{
		Name:     "Dune",
		Year:     1965,
		Category: strPtr("books"),
		Genres:   []string{"sci-fi"},
	})
	if err != nil {
		t.Fatalf("CreateTitle() error = %v", err)
	}

	if resp.Category == nil || resp.Category.Slug != "books" {
		t.Errorf("title category = %+v, want books", resp.Category)
	}
	if len(resp.Genres) != 1 || resp.Genres[0].Slug != "sci-fi" {
		t.Errorf("title genres = %+v, want sci-fi", resp.Genres)
	}
	if resp.Rating != nil {
		t.Errorf("new title rating = %v, want null", resp.Rating)
	}
}

func TestCreateTitleFutureYear(t *testing.T) {
	f := newTitleFixture()

	_, err := f.srv.CreateTitle(context.Background(), &request.CreateTitleRequest{
		Name: "Time Machine Sequel",
		Year: time.Now().Year() + 1,
	})
	if err == nil || !strings.Contains(err.Error(), "invalid year") {
		t.Errorf("CreateTitle() error = %v, want invalid year", err)
	}
}

func TestCreateTitleUnknownCategory(t *testing.T) {
	f := newTitleFixture()

	_, err := f.srv.CreateTitle(context.Background(), &request.CreateTitleRequest{
		Name:     "Dune",
		Year:     1965,
		Category: strPtr("nope"),
	})
	if err == nil || !strings.Contains(err.Error(), "category nope not found") {
		t.Errorf("CreateTitle() error = %v, want unknown category", err)
	}
}

func TestCreateTitleUnknownGenre(t *testing.T) {
	f := newTitleFixture()

	_, err := f.srv.CreateTitle(context.Background(), &request.CreateTitleRequest{
		Name:   "Dune",
		Year:   1965,
		Genres: []string{"nope"},
	})
	if err == nil || !strings.Contains(err.Error(), "genre nope not found") {
		t.Errorf("CreateTitle() error = %v, want unknown genre", err)
	}
}

func TestGetTitleRatingDerivedFromReviews(t *testing.T) {
	f := newTitleFixture()

	created, err := f.srv.CreateTitle(context.Background(), &request.CreateTitleRequest{
		Name: "Dune",
		Year: 1965,
	})
	if err != nil {
		t.Fatalf("CreateTitle() error = %v", err)
	}
	titleID, _ := uuid.Parse(created.ID)

	// Scores 8 and 9 average to 8.5, which rounds up to 9.
	for _, score := range []int{8, 9} {
		review := &entity.Review{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			TitleID:    titleID,
			AuthorID:   uuid.New(),
			Text:       "review",
			Score:      score,
		}
		f.reviews.reviews[review.ID] = review
	}

	resp, err := f.srv.GetTitle(context.Background(), titleID)
	if err != nil {
		t.Fatalf("GetTitle() error = %v", err)
	}
	if resp.Rating == nil || *resp.Rating != 9 {
		t.Errorf("title rating = %v, want 9", resp.Rating)
	}
}

func TestUpdateTitleReplacesGenres(t *testing.T) {
	f := newTitleFixture()

	created, err := f.srv.CreateTitle(context.Background(), &request.CreateTitleRequest{
		Name:   "Dune",
		Year:   1965,
		Genres: []string{"sci-fi"},
	})
	if err != nil {
		t.Fatalf("CreateTitle() error = %v", err)
	}
	titleID, _ := uuid.Parse(created.ID)

	resp, err := f.srv.UpdateTitle(context.Background(), titleID, &request.UpdateTitleRequest{
		Genres: []string{},
	})
	if err != nil {
		t.Fatalf("UpdateTitle() error = %v", err)
	}
	if len(resp.Genres) != 0 {
		t.Errorf("genres after clearing = %+v, want none", resp.Genres)
	}
}

func TestDeleteTitleNotFoundAfter(t *testing.T) {
	f := newTitleFixture()

	created, err := f.srv.CreateTitle(context.Background(), &request.CreateTitleRequest{
		Name: "Dune",
		Year: 1965,
	})
	if err != nil {
		t.Fatalf("CreateTitle() error = %v", err)
	}
	titleID, _ := uuid.Parse(created.ID)

	if err := f.srv.DeleteTitle(context.Background(), titleID); err != nil {
		t.Fatalf("DeleteTitle() error = %v", err)
	}

	if _, err := f.srv.GetTitle(context.Background(), titleID); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetTitle() after delete error = %v, want not found", err)
	}
}
