package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"review-catalog/internal/access"
	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reviewFixture struct {
	srv     ReviewService
	reviews *fakeReviewRepo
	title   *entity.Title
	author  *entity.User
}

func newReviewFixture(reviews ...*entity.Review) *reviewFixture {
	title := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name: "Dune",
		Year: 1965,
	}
	author := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     entity.RoleUser,
	}

	reviewRepo := newFakeReviewRepo(reviews...)
	repo := &repository.Repository{
		User:   newFakeUserRepo(author),
		Title:  newFakeTitleRepo(title),
		Review: reviewRepo,
	}

	return &reviewFixture{
		srv:     NewReviewService(repo, zap.NewNop()),
		reviews: reviewRepo,
		title:   title,
		author:  author,
	}
}

func (f *reviewFixture) existingReview(score int) *entity.Review {
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		TitleID:    f.title.ID,
		AuthorID:   f.author.ID,
		Text:       "a classic",
		Score:      score,
	}
	f.reviews.reviews[review.ID] = review
	return review
}

func identFor(user *entity.User) access.Identity {
	return access.Identity{UserID: user.ID, Role: user.Role, IsSuperuser: user.IsSuperuser}
}

func TestCreateReview(t *testing.T) {
	f := newReviewFixture()

	resp, err := f.srv.CreateReview(context.Background(), f.title.ID, f.author.ID, &request.CreateReviewRequest{
		Text:  "a classic",
		Score: 9,
	})
	if err != nil {
		t.Fatalf("CreateReview() error = %v", err)
	}
	if resp.Score != 9 {
		t.Errorf("review score = %d, want 9", resp.Score)
	}
	if resp.Author != "reader" {
		t.Errorf("review author = %q, want %q", resp.Author, "reader")
	}
}

func TestCreateReviewScoreOutOfRange(t *testing.T) {
	f := newReviewFixture()

	for _, score := range []int{0, 11} {
		_, err := f.srv.CreateReview(context.Background(), f.title.ID, f.author.ID, &request.CreateReviewRequest{
			Text:  "bad score",
			Score: score,
		})
		if err == nil || !strings.Contains(err.Error(), "validation failed") {
			t.Errorf("CreateReview(score=%d) error = %v, want validation failure", score, err)
		}
	}
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	f := newReviewFixture()

	_, err := f.srv.CreateReview(context.Background(), uuid.New(), f.author.ID, &request.CreateReviewRequest{
		Text:  "ghost title",
		Score: 5,
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("CreateReview() error = %v, want not found", err)
	}
}

func TestCreateReviewDuplicate(t *testing.T) {
	f := newReviewFixture()
	f.existingReview(7)

	_, err := f.srv.CreateReview(context.Background(), f.title.ID, f.author.ID, &request.CreateReviewRequest{
		Text:  "second attempt",
		Score: 8,
	})
	if err == nil || !strings.Contains(err.Error(), "already reviewed") {
		t.Errorf("CreateReview() error = %v, want duplicate conflict", err)
	}
}

func TestCreateReviewRaceHitsUniqueConstraint(t *testing.T) {
	f := newReviewFixture()
	f.reviews.forceUniqueViolation = true

	_, err := f.srv.CreateReview(context.Background(), f.title.ID, f.author.ID, &request.CreateReviewRequest{
		Text:  "concurrent submit",
		Score: 8,
	})
	if err == nil || !strings.Contains(err.Error(), "already reviewed") {
		t.Errorf("CreateReview() error = %v, want duplicate conflict", err)
	}
}

func TestUpdateReviewByAuthor(t *testing.T) {
	f := newReviewFixture()
	review := f.existingReview(7)

	newScore := 10
	resp, err := f.srv.UpdateReview(context.Background(), identFor(f.author), f.title.ID, review.ID, &request.UpdateReviewRequest{
		Score: &newScore,
	})
	if err != nil {
		t.Fatalf("UpdateReview() error = %v", err)
	}
	if resp.Score != 10 {
		t.Errorf("updated score = %d, want 10", resp.Score)
	}
}

func TestUpdateReviewByStrangerForbidden(t *testing.T) {
	f := newReviewFixture()
	review := f.existingReview(7)

	stranger := access.Identity{UserID: uuid.New(), Role: entity.RoleUser}
	text := "hijacked"
	_, err := f.srv.UpdateReview(context.Background(), stranger, f.title.ID, review.ID, &request.UpdateReviewRequest{
		Text: &text,
	})
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("UpdateReview() error = %v, want permission denied", err)
	}
}

func TestDeleteReviewByModerator(t *testing.T) {
	f := newReviewFixture()
	review := f.existingReview(7)

	moderator := access.Identity{UserID: uuid.New(), Role: entity.RoleModerator}
	if err := f.srv.DeleteReview(context.Background(), moderator, f.title.ID, review.ID); err != nil {
		t.Fatalf("DeleteReview() by moderator error = %v", err)
	}

	if _, err := f.srv.GetReview(context.Background(), f.title.ID, review.ID); err == nil {
		t.Error("deleted review should not be found")
	}
}

func TestGetReviewWrongTitleScope(t *testing.T) {
	f := newReviewFixture()
	review := f.existingReview(7)

	otherTitle := &entity.Title{
		Base: entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name: "Solaris",
		Year: 1961,
	}
	f.reviews.reviews[review.ID] = review

	// Register the second title so the scoping check, not the title
	// lookup, is what fails.
	repo := &repository.Repository{
		User:   newFakeUserRepo(f.author),
		Title:  newFakeTitleRepo(f.title, otherTitle),
		Review: f.reviews,
	}
	srv := NewReviewService(repo, zap.NewNop())

	_, err := srv.GetReview(context.Background(), otherTitle.ID, review.ID)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetReview() across titles error = %v, want not found", err)
	}
}
