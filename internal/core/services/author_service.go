package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
)

// Author service errors
var (
	ErrAuthorNotFound = errors.New("author not found")
)

// AuthorService handles author catalog business logic
type AuthorService struct {
	authorRepo *repositories.AuthorRepository
}

// NewAuthorService creates a new author service
func NewAuthorService(authorRepo *repositories.AuthorRepository) *AuthorService {
	return &AuthorService{authorRepo: authorRepo}
}

// AuthorInput represents create/update author input
type AuthorInput struct {
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"required,max=100"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	PhotoURL  string     `json:"photo_url,omitempty" validate:"omitempty,max=500"`
}

// Create creates a new author
func (s *AuthorService) Create(ctx context.Context, input *AuthorInput) (*models.Author, error) {
	author := &models.Author{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: input.BirthDate,
		PhotoURL:  input.PhotoURL,
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// GetByID gets an author with their average rating attached
func (s *AuthorService) GetByID(ctx context.Context, id uint) (*models.AuthorResponse, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}
	return s.withRating(ctx, author)
}

// Search finds authors by name; an empty term lists all
func (s *AuthorService) Search(ctx context.Context, term string) ([]*models.AuthorResponse, error) {
	authors, err := s.authorRepo.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	resps := make([]*models.AuthorResponse, 0, len(authors))
	for _, author := range authors {
		resp, err := s.withRating(ctx, author)
		if err != nil {
			return nil, err
		}
		resps = append(resps, resp)
	}
	return resps, nil
}

// Update updates an author
func (s *AuthorService) Update(ctx context.Context, id uint, input *AuthorInput) (*models.AuthorResponse, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	author.FirstName = input.FirstName
	author.LastName = input.LastName
	author.BirthDate = input.BirthDate
	author.PhotoURL = input.PhotoURL

	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}
	return s.withRating(ctx, author)
}

// Delete removes an author. Their books stay in the catalog.
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthorNotFound
		}
		return err
	}
	return s.authorRepo.Delete(ctx, id)
}

// withRating builds a response with the average rating across the
// author's books, nil when none are rated.
func (s *AuthorService) withRating(ctx context.Context, author *models.Author) (*models.AuthorResponse, error) {
	resp := author.ToResponse()
	avg, err := s.authorRepo.AverageRating(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	resp.AverageRating = avg
	return resp, nil
}
