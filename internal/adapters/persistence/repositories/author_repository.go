package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
)

// AuthorRepository handles author data access
type AuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

// Create creates a new author
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// GetByID gets an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// List lists authors with pagination
func (r *AuthorRepository) List(ctx context.Context, offset, limit int) ([]*models.Author, int64, error) {
	var authors []*models.Author
	var total int64

	r.db.WithContext(ctx).Model(&models.Author{}).Count(&total)

	err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Find(&authors).Error

	return authors, total, err
}

// Search finds authors whose first or last name contains the term,
// case-insensitive. An empty term returns all authors.
func (r *AuthorRepository) Search(ctx context.Context, term string) ([]*models.Author, error) {
	var authors []*models.Author
	q := r.db.WithContext(ctx)

	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern)
	}

	err := q.Find(&authors).Error
	return authors, err
}

// Update updates an author
func (r *AuthorRepository) Update(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Save(author).Error
}

// Delete removes an author and its book links. Books themselves stay.
func (r *AuthorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_authors WHERE author_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Author{}, id).Error
	})
}

// AverageRating computes the mean score over all books by this author.
// Returns nil when no rating exists for any of their books.
func (r *AuthorRepository) AverageRating(ctx context.Context, authorID uint) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(ratings.score)").
		Joins("JOIN book_authors ON book_authors.book_id = ratings.book_id").
		Where("book_authors.author_id = ?", authorID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}
