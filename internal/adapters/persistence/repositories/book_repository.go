package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
)

// BookRepository handles book data access
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create creates a new book with its author links
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByID gets a book by ID with authors preloaded
func (r *BookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Authors").
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List lists books with pagination, authors preloaded
func (r *BookRepository) List(ctx context.Context, genre string, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Book{})
	if genre != "" {
		q = q.Where("genre = ?", genre)
	}
	q.Count(&total)

	err := q.
		Preload("Authors").
		Offset(offset).
		Limit(limit).
		Find(&books).Error

	return books, total, err
}

// Search finds books whose title or any author's first/last name contains
// the term, case-insensitive, deduplicated, with authors preloaded. An
// empty term returns all books.
func (r *BookRepository) Search(ctx context.Context, term string) ([]*models.Book, error) {
	var books []*models.Book
	q := r.db.WithContext(ctx).Model(&models.Book{})

	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.
			Joins("LEFT JOIN book_authors ON book_authors.book_id = books.id").
			Joins("LEFT JOIN authors ON authors.id = book_authors.author_id").
			Where(
				"LOWER(books.title) LIKE ? OR LOWER(authors.first_name) LIKE ? OR LOWER(authors.last_name) LIKE ?",
				pattern, pattern, pattern,
			).
			Distinct("books.*")
	}

	err := q.Preload("Authors").Find(&books).Error
	return books, err
}

// Update updates a book's own columns
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Omit("Authors").Save(book).Error
}

// ReplaceAuthors replaces the book's author set
func (r *BookRepository) ReplaceAuthors(ctx context.Context, book *models.Book, authors []*models.Author) error {
	return r.db.WithContext(ctx).Model(book).Association("Authors").Replace(authors)
}

// GetAuthorsByIDs loads authors for the given ids; missing ids shrink the result
func (r *BookRepository) GetAuthorsByIDs(ctx context.Context, ids []uint) ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&authors).Error
	return authors, err
}

// Delete removes a book and cascades to its issues, ratings, comments and
// author links in one transaction, mirroring the ownership rules of the
// data model.
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&models.BookIssue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM book_authors WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Book{}, id).Error
	})
}

// AverageRating computes the mean score of the book's ratings, 0 when the
// book has none. Always recomputed from current rows, never cached.
func (r *BookRepository) AverageRating(ctx context.Context, bookID uint) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(score)").
		Where("book_id = ?", bookID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// Count counts all books
func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error
	return total, err
}
