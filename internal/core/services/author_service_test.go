package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
)

func newAuthorService(db *gorm.DB) *AuthorService {
	return NewAuthorService(repositories.NewAuthorRepository(db))
}

func TestAuthorService_GetByID_AverageRating(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthorService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	author := createTestAuthor(t, db, "Fyodor", "Dostoevsky")
	book := createTestBook(t, db, "Crime and Punishment", author)
	other := createTestBook(t, db, "The Idiot", author)

	// No ratings anywhere: the average is absent, not zero
	resp, err := svc.GetByID(ctx(), author.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.AverageRating)

	createTestRating(t, db, book.ID, alice.ID, 5)
	createTestRating(t, db, book.ID, bob.ID, 2)
	createTestRating(t, db, other.ID, alice.ID, 5)

	// Average spans every rating across the author's books
	resp, err = svc.GetByID(ctx(), author.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.AverageRating)
	assert.InDelta(t, 4.0, *resp.AverageRating, 0.001)
}

func TestAuthorService_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthorService(db)

	_, err := svc.GetByID(ctx(), 77)
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestAuthorService_Search(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthorService(db)

	createTestAuthor(t, db, "John", "Doe")
	createTestAuthor(t, db, "Jane", "Smith")
	createTestAuthor(t, db, "Doerte", "Hansen")

	// Matches first or last name, case-insensitively
	results, err := svc.Search(ctx(), "doe")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Search(ctx(), "")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestAuthorService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthorService(db)

	author := createTestAuthor(t, db, "Jonh", "Doe")

	resp, err := svc.Update(ctx(), author.ID, &AuthorInput{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)
	assert.Equal(t, "John", resp.FirstName)

	_, err = svc.Update(ctx(), 77, &AuthorInput{FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestAuthorService_Delete_KeepsBooks(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthorService(db)
	books := NewBookService(repositories.NewBookRepository(db))

	author := createTestAuthor(t, db, "Fyodor", "Dostoevsky")
	book := createTestBook(t, db, "Crime and Punishment", author)

	require.NoError(t, svc.Delete(ctx(), author.ID))

	_, err := svc.GetByID(ctx(), author.ID)
	assert.ErrorIs(t, err, ErrAuthorNotFound)

	// The book survives, now without the author link
	resp, err := books.GetByID(ctx(), book.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Authors)

	var links int64
	db.Table("book_authors").Where("author_id = ?", author.ID).Count(&links)
	assert.Zero(t, links)
}

func TestAuthorService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthorService(db)

	author, err := svc.Create(ctx(), &AuthorInput{FirstName: "Jane", LastName: "Smith"})
	require.NoError(t, err)
	assert.NotZero(t, author.ID)

	var stored models.Author
	require.NoError(t, db.First(&stored, author.ID).Error)
	assert.Equal(t, "Smith", stored.LastName)
}
