package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/domain"
)

// setupTestDB opens a private in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second pooled connection would see an empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.org",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestAuthor(t *testing.T, db *gorm.DB, first, last string) *models.Author {
	t.Helper()

	author := &models.Author{FirstName: first, LastName: last}
	require.NoError(t, db.Create(author).Error)
	return author
}

func createTestBook(t *testing.T, db *gorm.DB, title string, authors ...*models.Author) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Authors: authors}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createTestIssue(t *testing.T, db *gorm.DB, bookID, userID uint, due time.Time) *models.BookIssue {
	t.Helper()

	issue := &models.BookIssue{
		BookID:       bookID,
		UserID:       userID,
		IssueDate:    due.AddDate(0, 0, -domain.RentalPeriodDefault),
		RentalPeriod: domain.RentalPeriodDefault,
		DueDate:      due,
	}
	require.NoError(t, db.Create(issue).Error)
	return issue
}

func createTestRating(t *testing.T, db *gorm.DB, bookID, userID uint, score int) *models.Rating {
	t.Helper()

	rating := &models.Rating{BookID: bookID, UserID: userID, Score: score}
	require.NoError(t, db.Create(rating).Error)
	return rating
}

func newLoanService(db *gorm.DB) *LoanService {
	return NewLoanService(
		repositories.NewIssueRepository(db),
		repositories.NewBookRepository(db),
		repositories.NewUserRepository(db),
		nil,
	)
}

func ctx() context.Context {
	return context.Background()
}
