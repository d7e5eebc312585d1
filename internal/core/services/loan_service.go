package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
)

// Loan service errors
var (
	ErrIssueNotFound   = errors.New("book issue not found")
	ErrAlreadyReturned = errors.New("book already returned")
)

// LoanService handles the book rental workflow
type LoanService struct {
	issueRepo   *repositories.IssueRepository
	bookRepo    *repositories.BookRepository
	userRepo    repositories.UserRepository
	mailService *MailService
}

// NewLoanService creates a new loan service
func NewLoanService(
	issueRepo *repositories.IssueRepository,
	bookRepo *repositories.BookRepository,
	userRepo repositories.UserRepository,
	mailService *MailService,
) *LoanService {
	return &LoanService{
		issueRepo:   issueRepo,
		bookRepo:    bookRepo,
		userRepo:    userRepo,
		mailService: mailService,
	}
}

// CreateIssueInput represents a rental request. RentalPeriod falls back
// to the default when not positive; there is deliberately no upper bound
// and no check against concurrent loans of the same book.
type CreateIssueInput struct {
	BookID       uint `json:"book_id" validate:"required"`
	RentalPeriod int  `json:"rental_period,omitempty"`
}

// CreateIssueOutput is the created issue plus the user-visible
// confirmation message.
type CreateIssueOutput struct {
	Issue   *models.BookIssue `json:"issue"`
	Message string            `json:"message"`
}

// Create creates a book issue for the acting user, computes the due date
// and sends a best-effort confirmation mail after the row is persisted.
func (s *LoanService) Create(ctx context.Context, input *CreateIssueInput, identity domain.Identity) (*CreateIssueOutput, error) {
	book, err := s.bookRepo.GetByID(ctx, input.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	rentalPeriod := input.RentalPeriod
	if rentalPeriod <= 0 {
		rentalPeriod = domain.RentalPeriodDefault
	}

	today := truncateToDay(time.Now())
	issue := &models.BookIssue{
		BookID:       book.ID,
		UserID:       identity.UserID,
		IssueDate:    today,
		RentalPeriod: rentalPeriod,
		DueDate:      today.AddDate(0, 0, rentalPeriod),
	}

	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}
	issue.Book = book

	// Confirmation mail runs after the commit and never fails the request
	if s.mailService != nil {
		if user, err := s.userRepo.GetByID(ctx, identity.UserID); err == nil {
			go s.mailService.SendRentalConfirmation(user, book, issue.DueDate)
		}
	}

	message := fmt.Sprintf("You have rented %q until %s.", book.Title, issue.DueDate.Format("2006-01-02"))
	return &CreateIssueOutput{Issue: issue, Message: message}, nil
}

// GetByID gets an issue visible to the acting identity. Ownership scoping
// hides foreign issues as not-found rather than forbidden.
func (s *LoanService) GetByID(ctx context.Context, id uint, identity domain.Identity) (*models.BookIssue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	if !domain.OwnerOrAdmin(identity, domain.VerbRead, issue) {
		return nil, ErrIssueNotFound
	}
	return issue, nil
}

// ListActive lists the acting user's unreturned issues, earliest due first
func (s *LoanService) ListActive(ctx context.Context, identity domain.Identity) ([]*models.BookIssue, error) {
	return s.issueRepo.ListActiveByUser(ctx, identity.UserID)
}

// List lists issues: staff see all, everyone else only their own
func (s *LoanService) List(ctx context.Context, identity domain.Identity, offset, limit int) ([]*models.BookIssue, int64, error) {
	if identity.IsStaff() {
		return s.issueRepo.List(ctx, offset, limit)
	}
	return s.issueRepo.ListByUser(ctx, identity.UserID, offset, limit)
}

// Return closes an issue by setting its return date. Returning twice is a
// validation error; the issue date and rental period never change.
func (s *LoanService) Return(ctx context.Context, id uint, identity domain.Identity) (*models.BookIssue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	if !domain.OwnerOrAdmin(identity, domain.VerbWrite, issue) {
		return nil, ErrIssueNotFound
	}
	if issue.IsReturned() {
		return nil, ErrAlreadyReturned
	}

	now := truncateToDay(time.Now())
	issue.ReturnDate = &now
	if err := s.issueRepo.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

// truncateToDay drops the time-of-day part, keeping dates comparable
// across the issue/due/return columns.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
