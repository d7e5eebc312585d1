package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/core/domain"
)

func TestStatsService_GetOverview(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	author := createTestAuthor(t, db, "Fyodor", "Dostoevsky")
	good := createTestBook(t, db, "Crime and Punishment", author)
	bad := createTestBook(t, db, "Filler", author)

	createTestRating(t, db, good.ID, alice.ID, 5)
	createTestRating(t, db, good.ID, bob.ID, 5)
	createTestRating(t, db, bad.ID, alice.ID, 2)

	createTestIssue(t, db, good.ID, alice.ID, time.Now().AddDate(0, 0, 7))
	createTestIssue(t, db, good.ID, bob.ID, time.Now().AddDate(0, 0, -3))

	overview, err := svc.GetOverview(ctx())
	require.NoError(t, err)

	assert.EqualValues(t, 2, overview.TotalBooks)
	assert.EqualValues(t, 1, overview.TotalAuthors)
	assert.EqualValues(t, 2, overview.TotalUsers)
	assert.EqualValues(t, 2, overview.ActiveLoans)
	assert.EqualValues(t, 1, overview.OverdueLoans)

	require.NotEmpty(t, overview.TopRated)
	assert.Equal(t, good.ID, overview.TopRated[0].BookID)
	assert.InDelta(t, 5.0, overview.TopRated[0].AverageRating, 0.001)
	assert.EqualValues(t, 2, overview.TopRated[0].RatingCount)
}
