package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
)

// Book service errors
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrUnknownAuthorIDs = errors.New("one or more author ids do not exist")
)

// BookService handles book catalog business logic
type BookService struct {
	bookRepo *repositories.BookRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo *repositories.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// BookInput represents create/update book input
type BookInput struct {
	Title         string     `json:"title" validate:"required,max=255"`
	AuthorIDs     []uint     `json:"author_ids"`
	Genre         string     `json:"genre,omitempty" validate:"omitempty,max=100"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Description   string     `json:"description,omitempty"`
	CoverURL      string     `json:"cover_url,omitempty" validate:"omitempty,max=500"`
}

// Create creates a new book linked to existing authors
func (s *BookService) Create(ctx context.Context, input *BookInput) (*models.BookResponse, error) {
	authors, err := s.resolveAuthors(ctx, input.AuthorIDs)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:         input.Title,
		Genre:         input.Genre,
		PublishedDate: input.PublishedDate,
		Description:   input.Description,
		CoverURL:      input.CoverURL,
		Authors:       authors,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return s.withRating(ctx, book)
}

// GetByID gets a book with authors and average rating attached
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.BookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return s.withRating(ctx, book)
}

// ListInput represents list parameters
type ListInput struct {
	Genre  string
	Offset int
	Limit  int
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, input *ListInput) ([]*models.BookResponse, int64, error) {
	books, total, err := s.bookRepo.List(ctx, input.Genre, input.Offset, input.Limit)
	if err != nil {
		return nil, 0, err
	}

	resps, err := s.withRatings(ctx, books)
	if err != nil {
		return nil, 0, err
	}
	return resps, total, nil
}

// Search finds books by title or author name; an empty term lists all
func (s *BookService) Search(ctx context.Context, term string) ([]*models.BookResponse, error) {
	books, err := s.bookRepo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.withRatings(ctx, books)
}

// Update updates a book and replaces its author set
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) (*models.BookResponse, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	authors, err := s.resolveAuthors(ctx, input.AuthorIDs)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Genre = input.Genre
	book.PublishedDate = input.PublishedDate
	book.Description = input.Description
	book.CoverURL = input.CoverURL

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	if err := s.bookRepo.ReplaceAuthors(ctx, book, authors); err != nil {
		return nil, err
	}
	book.Authors = authors

	return s.withRating(ctx, book)
}

// Delete removes a book together with its issues, ratings and comments
func (s *BookService) Delete(ctx context.Context, id uint) error {
	if _, err := s.bookRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return s.bookRepo.Delete(ctx, id)
}

// resolveAuthors loads the referenced authors, rejecting unknown ids
func (s *BookService) resolveAuthors(ctx context.Context, ids []uint) ([]*models.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	authors, err := s.bookRepo.GetAuthorsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(authors) != len(ids) {
		return nil, ErrUnknownAuthorIDs
	}
	return authors, nil
}

func (s *BookService) withRating(ctx context.Context, book *models.Book) (*models.BookResponse, error) {
	resp := book.ToResponse()
	avg, err := s.bookRepo.AverageRating(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	resp.AverageRating = avg
	return resp, nil
}

func (s *BookService) withRatings(ctx context.Context, books []*models.Book) ([]*models.BookResponse, error) {
	resps := make([]*models.BookResponse, 0, len(books))
	for _, book := range books {
		resp, err := s.withRating(ctx, book)
		if err != nil {
			return nil, err
		}
		resps = append(resps, resp)
	}
	return resps, nil
}
