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

func newBookService(db *gorm.DB) *BookService {
	return NewBookService(repositories.NewBookRepository(db))
}

func TestBookService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	author := createTestAuthor(t, db, "Fyodor", "Dostoevsky")

	resp, err := svc.Create(ctx(), &BookInput{
		Title:     "Crime and Punishment",
		Genre:     "Classic",
		AuthorIDs: []uint{author.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Crime and Punishment", resp.Title)
	require.Len(t, resp.Authors, 1)
	assert.Equal(t, "Dostoevsky", resp.Authors[0].LastName)
	assert.Zero(t, resp.AverageRating)
}

func TestBookService_Create_UnknownAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	author := createTestAuthor(t, db, "Fyodor", "Dostoevsky")

	_, err := svc.Create(ctx(), &BookInput{
		Title:     "Ghost Written",
		AuthorIDs: []uint{author.ID, 999},
	})
	assert.ErrorIs(t, err, ErrUnknownAuthorIDs)
}

func TestBookService_Search(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	doe := createTestAuthor(t, db, "John", "Doe")
	smith := createTestAuthor(t, db, "Jane", "Smith")

	createTestBook(t, db, "Doeskin Tales", smith)
	createTestBook(t, db, "Gardening", doe, smith)
	createTestBook(t, db, "Woodworking", smith)

	// Case-insensitive match on title or author name, deduplicated
	results, err := svc.Search(ctx(), "DOE")
	require.NoError(t, err)
	require.Len(t, results, 2)

	titles := []string{results[0].Title, results[1].Title}
	assert.Contains(t, titles, "Doeskin Tales")
	assert.Contains(t, titles, "Gardening")

	// An empty term lists everything
	results, err = svc.Search(ctx(), "")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = svc.Search(ctx(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBookService_List_GenreFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	require.NoError(t, db.Create(&models.Book{Title: "A", Genre: "Horror"}).Error)
	require.NoError(t, db.Create(&models.Book{Title: "B", Genre: "Horror"}).Error)
	require.NoError(t, db.Create(&models.Book{Title: "C", Genre: "Poetry"}).Error)

	books, total, err := svc.List(ctx(), &ListInput{Genre: "Horror", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, books, 2)
	assert.EqualValues(t, 2, total)

	books, total, err = svc.List(ctx(), &ListInput{Limit: 20})
	require.NoError(t, err)
	assert.Len(t, books, 3)
	assert.EqualValues(t, 3, total)
}

func TestBookService_Update_ReplacesAuthors(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	doe := createTestAuthor(t, db, "John", "Doe")
	smith := createTestAuthor(t, db, "Jane", "Smith")
	book := createTestBook(t, db, "First Edition", doe)

	resp, err := svc.Update(ctx(), book.ID, &BookInput{
		Title:     "Second Edition",
		AuthorIDs: []uint{smith.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Second Edition", resp.Title)
	require.Len(t, resp.Authors, 1)
	assert.Equal(t, smith.ID, resp.Authors[0].ID)
}

func TestBookService_Delete_Cascades(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	author := createTestAuthor(t, db, "Fyodor", "Dostoevsky")
	doomed := createTestBook(t, db, "Doomed", author)
	keeper := createTestBook(t, db, "Keeper", author)

	createTestIssue(t, db, doomed.ID, alice.ID, doomed.CreatedAt.AddDate(0, 0, 14))
	createTestRating(t, db, doomed.ID, alice.ID, 3)
	require.NoError(t, db.Create(&models.Comment{BookID: doomed.ID, UserID: alice.ID, Text: "fine"}).Error)

	require.NoError(t, svc.Delete(ctx(), doomed.ID))

	_, err := svc.GetByID(ctx(), doomed.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	// Dependent rows go with the book
	var issues, ratings, comments int64
	db.Model(&models.BookIssue{}).Where("book_id = ?", doomed.ID).Count(&issues)
	db.Model(&models.Rating{}).Where("book_id = ?", doomed.ID).Count(&ratings)
	db.Model(&models.Comment{}).Where("book_id = ?", doomed.ID).Count(&comments)
	assert.Zero(t, issues)
	assert.Zero(t, ratings)
	assert.Zero(t, comments)

	// The author and their other books survive
	kept, err := svc.GetByID(ctx(), keeper.ID)
	require.NoError(t, err)
	require.Len(t, kept.Authors, 1)
	assert.Equal(t, author.ID, kept.Authors[0].ID)
}

func TestBookService_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	err := svc.Delete(ctx(), 12345)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
