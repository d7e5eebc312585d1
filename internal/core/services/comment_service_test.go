package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/core/domain"
)

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(repositories.NewCommentRepository(db), repositories.NewBookRepository(db))
}

func TestCommentService_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	guest := createTestUser(t, db, "guest", string(domain.RoleVisitor))
	book := createTestBook(t, db, "Crime and Punishment")

	_, err := svc.Create(ctx(), &CreateCommentInput{BookID: book.ID, Text: "gripping"}, alice.Identity())
	require.NoError(t, err)

	// Visitors comment too
	_, err = svc.Create(ctx(), &CreateCommentInput{BookID: book.ID, Text: "long"}, guest.Identity())
	require.NoError(t, err)

	comments, err := svc.ListByBook(ctx(), book.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	for _, c := range comments {
		require.NotNil(t, c.User)
	}

	_, err = svc.Create(ctx(), &CreateCommentInput{BookID: 99, Text: "lost"}, alice.Identity())
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = svc.ListByBook(ctx(), 99)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestCommentService_Delete_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	staff := createTestUser(t, db, "admin", string(domain.RoleStaff))
	book := createTestBook(t, db, "The Idiot")

	comment, err := svc.Create(ctx(), &CreateCommentInput{BookID: book.ID, Text: "mine"}, alice.Identity())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx(), comment.ID, bob.Identity()), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx(), comment.ID, staff.Identity()), domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx(), comment.ID, alice.Identity()))
	assert.ErrorIs(t, svc.Delete(ctx(), comment.ID, alice.Identity()), ErrCommentNotFound)
}
