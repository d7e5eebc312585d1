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

func newRatingService(db *gorm.DB) *RatingService {
	return NewRatingService(repositories.NewRatingRepository(db), repositories.NewBookRepository(db))
}

func TestRatingService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)
	books := NewBookService(repositories.NewBookRepository(db))

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	book := createTestBook(t, db, "Crime and Punishment")

	rating, err := svc.Create(ctx(), &CreateRatingInput{BookID: book.ID, Score: 5}, alice.Identity())
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Score)
	assert.Equal(t, alice.ID, rating.UserID)

	_, err = svc.Create(ctx(), &CreateRatingInput{BookID: book.ID, Score: 3, Review: "solid"}, bob.Identity())
	require.NoError(t, err)

	// The book's average reflects both scores without being stored
	resp, err := books.GetByID(ctx(), book.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, resp.AverageRating, 0.001)
}

func TestRatingService_Create_ScoreOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	book := createTestBook(t, db, "The Brothers Karamazov")

	for _, score := range []int{0, -1, 6, 100} {
		_, err := svc.Create(ctx(), &CreateRatingInput{BookID: book.ID, Score: score}, alice.Identity())
		assert.ErrorIs(t, err, ErrScoreOutOfRange, "score %d", score)
	}

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRatingService_Create_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	book := createTestBook(t, db, "Notes from Underground")

	first, err := svc.Create(ctx(), &CreateRatingInput{BookID: book.ID, Score: 4}, alice.Identity())
	require.NoError(t, err)

	_, err = svc.Create(ctx(), &CreateRatingInput{BookID: book.ID, Score: 1}, alice.Identity())
	assert.ErrorIs(t, err, ErrAlreadyRated)

	// The original rating survives unchanged
	var stored models.Rating
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, 4, stored.Score)
}

func TestRatingService_Create_UnknownBook(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))

	_, err := svc.Create(ctx(), &CreateRatingInput{BookID: 42, Score: 3}, alice.Identity())
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRatingService_Delete_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	staff := createTestUser(t, db, "admin", string(domain.RoleStaff))
	book := createTestBook(t, db, "The Adolescent")
	rating := createTestRating(t, db, book.ID, alice.ID, 2)

	// Staff get no override on rating deletion
	err := svc.Delete(ctx(), rating.ID, staff.Identity())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx(), rating.ID, alice.Identity()))

	err = svc.Delete(ctx(), rating.ID, alice.Identity())
	assert.ErrorIs(t, err, ErrRatingNotFound)
}

func TestRatingService_ListByBook(t *testing.T) {
	db := setupTestDB(t)
	svc := newRatingService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	book := createTestBook(t, db, "The Eternal Husband")

	createTestRating(t, db, book.ID, alice.ID, 5)
	createTestRating(t, db, book.ID, bob.ID, 3)

	ratings, err := svc.ListByBook(ctx(), book.ID)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	for _, r := range ratings {
		require.NotNil(t, r.User)
	}

	_, err = svc.ListByBook(ctx(), 42)
	assert.ErrorIs(t, err, ErrBookNotFound)
}
