package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory fakes for the repository interfaces. Only the behavior the
// services rely on is modeled.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []*entity.User
	for _, user := range f.users {
		if user.DeletedAt != nil {
			continue
		}
		if search != "" && !strings.Contains(user.Username, search) {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) {
	users, _ := f.FindAll(ctx, search, 0, 0)
	return int64(len(users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		now := time.Now()
		user.DeletedAt = &now
	}
	return nil
}

func (f *fakeUserRepo) SetConfirmationCode(ctx context.Context, userID uuid.UUID, codeHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[userID]; ok {
		user.ConfirmationCodeHash = &codeHash
		user.ConfirmationExpiresAt = &expiresAt
	}
	return nil
}

func (f *fakeUserRepo) ClearConfirmationCode(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[userID]; ok {
		user.ConfirmationCodeHash = nil
		user.ConfirmationExpiresAt = nil
	}
	return nil
}

type fakeTitleRepo struct {
	titles map[uuid.UUID]*entity.Title
}

func newFakeTitleRepo(titles ...*entity.Title) *fakeTitleRepo {
	repo := &fakeTitleRepo{titles: make(map[uuid.UUID]*entity.Title)}
	for _, title := range titles {
		repo.titles[title.ID] = title
	}
	return repo
}

func (f *fakeTitleRepo) Create(ctx context.Context, title *entity.Title) error {
	f.titles[title.ID] = title
	return nil
}

func (f *fakeTitleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	title, ok := f.titles[id]
	if !ok || title.DeletedAt != nil {
		return nil, nil
	}
	return title, nil
}

func (f *fakeTitleRepo) FindAll(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	var titles []*entity.Title
	for _, title := range f.titles {
		if title.DeletedAt == nil {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

func (f *fakeTitleRepo) CountAll(ctx context.Context, filter repository.TitleFilter) (int64, error) {
	titles, _ := f.FindAll(ctx, filter, 0, 0)
	return int64(len(titles)), nil
}

func (f *fakeTitleRepo) Update(ctx context.Context, title *entity.Title) error {
	f.titles[title.ID] = title
	return nil
}

func (f *fakeTitleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if title, ok := f.titles[id]; ok {
		now := time.Now()
		title.DeletedAt = &now
	}
	return nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review

	// forceUniqueViolation simulates a concurrent double-submit slipping
	// past the pre-check and hitting the unique constraint.
	forceUniqueViolation bool
}

func newFakeReviewRepo(reviews ...*entity.Review) *fakeReviewRepo {
	repo := &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
	for _, review := range reviews {
		repo.reviews[review.ID] = review
	}
	return repo
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if f.forceUniqueViolation {
		return &pgconn.PgError{Code: "23505"}
	}
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	return review, nil
}

func (f *fakeReviewRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var reviews []*entity.Review
	for _, review := range f.reviews {
		if review.TitleID == titleID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (f *fakeReviewRepo) FindByTitleAndAuthor(ctx context.Context, titleID, authorID uuid.UUID) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.TitleID == titleID && review.AuthorID == authorID {
			return review, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	reviews, _ := f.FindByTitleID(ctx, titleID, 0, 0)
	return int64(len(reviews)), nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) GetTitleRatingStats(ctx context.Context, titleID uuid.UUID) (*float64, int64, error) {
	var sum, count int64
	for _, review := range f.reviews {
		if review.TitleID == titleID {
			sum += int64(review.Score)
			count++
		}
	}
	if count == 0 {
		return nil, 0, nil
	}
	avg := float64(sum) / float64(count)
	return &avg, count, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
	for _, category := range categories {
		repo.categories[category.ID] = category
	}
	return repo
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return category, nil
}

func (f *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, category := range f.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	var categories []*entity.Category
	for _, category := range f.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (f *fakeCategoryRepo) CountAll(ctx context.Context, search string) (int64, error) {
	return int64(len(f.categories)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(ctx context.Context, slug string) error {
	for id, category := range f.categories {
		if category.Slug == slug {
			delete(f.categories, id)
			return nil
		}
	}
	return nil
}

type fakeGenreRepo struct {
	genres  map[uuid.UUID]*entity.Genre
	byTitle map[uuid.UUID][]uuid.UUID
}

func newFakeGenreRepo(genres ...*entity.Genre) *fakeGenreRepo {
	repo := &fakeGenreRepo{
		genres:  make(map[uuid.UUID]*entity.Genre),
		byTitle: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, genre := range genres {
		repo.genres[genre.ID] = genre
	}
	return repo
}

func (f *fakeGenreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	f.genres[genre.ID] = genre
	return nil
}

func (f *fakeGenreRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Genre, error) {
	genre, ok := f.genres[id]
	if !ok {
		return nil, nil
	}
	return genre, nil
}

func (f *fakeGenreRepo) FindBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	for _, genre := range f.genres {
		if genre.Slug == slug {
			return genre, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var genres []*entity.Genre
	for _, genreID := range f.byTitle[titleID] {
		if genre, ok := f.genres[genreID]; ok {
			genres = append(genres, genre)
		}
	}
	return genres, nil
}

func (f *fakeGenreRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	var genres []*entity.Genre
	for _, genre := range f.genres {
		genres = append(genres, genre)
	}
	return genres, nil
}

func (f *fakeGenreRepo) CountAll(ctx context.Context, search string) (int64, error) {
	return int64(len(f.genres)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(ctx context.Context, slug string) error {
	for id, genre := range f.genres {
		if genre.Slug == slug {
			delete(f.genres, id)
			return nil
		}
	}
	return nil
}

// fakeTitleGenreRepo records the bridge rows inside fakeGenreRepo so
// FindByTitleID reflects writes.
type fakeTitleGenreRepo struct {
	genres *fakeGenreRepo
}

func (f *fakeTitleGenreRepo) Create(ctx context.Context, titleGenre *entity.TitleGenre) error {
	f.genres.byTitle[titleGenre.TitleID] = append(f.genres.byTitle[titleGenre.TitleID], titleGenre.GenreID)
	return nil
}

func (f *fakeTitleGenreRepo) CreateBatch(ctx context.Context, titleGenres []*entity.TitleGenre) error {
	for _, tg := range titleGenres {
		f.Create(ctx, tg)
	}
	return nil
}

func (f *fakeTitleGenreRepo) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	delete(f.genres.byTitle, titleID)
	return nil
}

func (f *fakeTitleGenreRepo) DeleteByGenreID(ctx context.Context, genreID uuid.UUID) error {
	for titleID, genreIDs := range f.genres.byTitle {
		var kept []uuid.UUID
		for _, id := range genreIDs {
			if id != genreID {
				kept = append(kept, id)
			}
		}
		f.genres.byTitle[titleID] = kept
	}
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, body)
	return nil
}
