package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
)

// IssueRepository handles book issue (loan) data access
type IssueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// Create creates a new book issue
func (r *IssueRepository) Create(ctx context.Context, issue *models.BookIssue) error {
	return r.db.WithContext(ctx).Create(issue).Error
}

// GetByID gets an issue by ID with its book and authors preloaded
func (r *IssueRepository) GetByID(ctx context.Context, id uint) (*models.BookIssue, error) {
	var issue models.BookIssue
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Book.Authors").
		First(&issue, id).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListActiveByUser lists a user's unreturned issues, earliest due first
func (r *IssueRepository) ListActiveByUser(ctx context.Context, userID uint) ([]*models.BookIssue, error) {
	var issues []*models.BookIssue
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Book.Authors").
		Where("user_id = ?", userID).
		Where("return_date IS NULL").
		Order("due_date ASC").
		Find(&issues).Error
	return issues, err
}

// ListByUser lists all of a user's issues, newest first
func (r *IssueRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.BookIssue, int64, error) {
	var issues []*models.BookIssue
	var total int64

	r.db.WithContext(ctx).Model(&models.BookIssue{}).Where("user_id = ?", userID).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("issue_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&issues).Error

	return issues, total, err
}

// List lists all issues with pagination (staff view)
func (r *IssueRepository) List(ctx context.Context, offset, limit int) ([]*models.BookIssue, int64, error) {
	var issues []*models.BookIssue
	var total int64

	r.db.WithContext(ctx).Model(&models.BookIssue{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Book").
		Order("issue_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&issues).Error

	return issues, total, err
}

// ListOverdue lists unreturned issues due strictly before the given date,
// with book and borrower preloaded for reminder mail.
func (r *IssueRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.BookIssue, error) {
	var issues []*models.BookIssue
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("User").
		Where("return_date IS NULL").
		Where("due_date < ?", asOf).
		Order("due_date ASC").
		Find(&issues).Error
	return issues, err
}

// Update updates an issue
func (r *IssueRepository) Update(ctx context.Context, issue *models.BookIssue) error {
	return r.db.WithContext(ctx).Save(issue).Error
}

// CountActive counts unreturned issues
func (r *IssueRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.BookIssue{}).
		Where("return_date IS NULL").
		Count(&total).Error
	return total, err
}

// CountOverdue counts unreturned issues past due as of the given date
func (r *IssueRepository) CountOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.BookIssue{}).
		Where("return_date IS NULL").
		Where("due_date < ?", asOf).
		Count(&total).Error
	return total, err
}
