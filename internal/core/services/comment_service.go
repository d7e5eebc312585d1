package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
)

// Comment service errors
var (
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentService handles book comments
type CommentService struct {
	commentRepo *repositories.CommentRepository
	bookRepo    *repositories.BookRepository
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo *repositories.CommentRepository, bookRepo *repositories.BookRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		bookRepo:    bookRepo,
	}
}

// CreateCommentInput represents comment creation input
type CreateCommentInput struct {
	BookID uint   `json:"book_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// Create adds a comment to a book for the acting user
func (s *CommentService) Create(ctx context.Context, input *CreateCommentInput, identity domain.Identity) (*models.Comment, error) {
	if _, err := s.bookRepo.GetByID(ctx, input.BookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	comment := &models.Comment{
		BookID: input.BookID,
		UserID: identity.UserID,
		Text:   input.Text,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByBook lists a book's comments, newest first
func (s *CommentService) ListByBook(ctx context.Context, bookID uint) ([]*models.Comment, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return s.commentRepo.ListByBook(ctx, bookID)
}

// Delete removes a comment, owner only
func (s *CommentService) Delete(ctx context.Context, id uint, identity domain.Identity) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if !domain.OwnerElseRead(identity, domain.VerbWrite, comment) {
		return domain.ErrForbidden
	}
	return s.commentRepo.Delete(ctx, id)
}
