package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/core/domain"
)

func TestLoanService_Create_DefaultPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	user := createTestUser(t, db, "alice", string(domain.RoleMember))
	book := createTestBook(t, db, "The Idiot")

	out, err := svc.Create(ctx(), &CreateIssueInput{BookID: book.ID}, user.Identity())
	require.NoError(t, err)

	issue := out.Issue
	assert.Equal(t, domain.RentalPeriodDefault, issue.RentalPeriod)
	assert.Equal(t, issue.IssueDate.AddDate(0, 0, domain.RentalPeriodDefault), issue.DueDate)
	assert.False(t, issue.IsReturned())
	assert.Nil(t, issue.ReturnDate)
	assert.Contains(t, out.Message, `"The Idiot"`)
	assert.Contains(t, out.Message, issue.DueDate.Format("2006-01-02"))
}

func TestLoanService_Create_CustomPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	user := createTestUser(t, db, "alice", string(domain.RoleMember))
	book := createTestBook(t, db, "Demons")

	out, err := svc.Create(ctx(), &CreateIssueInput{BookID: book.ID, RentalPeriod: 30}, user.Identity())
	require.NoError(t, err)

	assert.Equal(t, 30, out.Issue.RentalPeriod)
	assert.Equal(t, out.Issue.IssueDate.AddDate(0, 0, 30), out.Issue.DueDate)
}

func TestLoanService_Create_UnknownBook(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	user := createTestUser(t, db, "alice", string(domain.RoleMember))

	_, err := svc.Create(ctx(), &CreateIssueInput{BookID: 999}, user.Identity())
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestLoanService_GetByID_HidesForeignIssues(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	staff := createTestUser(t, db, "admin", string(domain.RoleStaff))
	book := createTestBook(t, db, "The Gambler")
	issue := createTestIssue(t, db, book.ID, alice.ID, time.Now().AddDate(0, 0, 7))

	got, err := svc.GetByID(ctx(), issue.ID, alice.Identity())
	require.NoError(t, err)
	assert.Equal(t, issue.ID, got.ID)

	// A foreign issue reads as not found, not as forbidden
	_, err = svc.GetByID(ctx(), issue.ID, bob.Identity())
	assert.ErrorIs(t, err, ErrIssueNotFound)

	// Staff see everything
	_, err = svc.GetByID(ctx(), issue.ID, staff.Identity())
	assert.NoError(t, err)
}

func TestLoanService_ListActive(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	book := createTestBook(t, db, "Poor Folk")

	later := createTestIssue(t, db, book.ID, alice.ID, time.Now().AddDate(0, 0, 14))
	soon := createTestIssue(t, db, book.ID, alice.ID, time.Now().AddDate(0, 0, 3))
	createTestIssue(t, db, book.ID, bob.ID, time.Now().AddDate(0, 0, 5))

	active, err := svc.ListActive(ctx(), alice.Identity())
	require.NoError(t, err)
	require.Len(t, active, 2)

	// Earliest due date first, other users' issues excluded
	assert.Equal(t, soon.ID, active[0].ID)
	assert.Equal(t, later.ID, active[1].ID)

	// Returning removes the issue from the active listing
	_, err = svc.Return(ctx(), soon.ID, alice.Identity())
	require.NoError(t, err)

	active, err = svc.ListActive(ctx(), alice.Identity())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, later.ID, active[0].ID)
}

func TestLoanService_Return(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	book := createTestBook(t, db, "White Nights")
	issue := createTestIssue(t, db, book.ID, alice.ID, time.Now().AddDate(0, 0, 14))

	// Only the owner (or staff) may return
	_, err := svc.Return(ctx(), issue.ID, bob.Identity())
	assert.ErrorIs(t, err, ErrIssueNotFound)

	returned, err := svc.Return(ctx(), issue.ID, alice.Identity())
	require.NoError(t, err)
	assert.True(t, returned.IsReturned())
	require.NotNil(t, returned.ReturnDate)

	// Issue date and period stay untouched
	assert.Equal(t, issue.RentalPeriod, returned.RentalPeriod)

	// Returning twice is rejected
	_, err = svc.Return(ctx(), issue.ID, alice.Identity())
	assert.ErrorIs(t, err, ErrAlreadyReturned)
}

func TestLoanService_List_StaffSeesAll(t *testing.T) {
	db := setupTestDB(t)
	svc := newLoanService(db)

	alice := createTestUser(t, db, "alice", string(domain.RoleMember))
	bob := createTestUser(t, db, "bob", string(domain.RoleMember))
	staff := createTestUser(t, db, "admin", string(domain.RoleStaff))
	book := createTestBook(t, db, "The Double")

	createTestIssue(t, db, book.ID, alice.ID, time.Now().AddDate(0, 0, 14))
	createTestIssue(t, db, book.ID, bob.ID, time.Now().AddDate(0, 0, 14))

	all, total, err := svc.List(ctx(), staff.Identity(), 0, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.EqualValues(t, 2, total)

	own, total, err := svc.List(ctx(), alice.Identity(), 0, 20)
	require.NoError(t, err)
	assert.Len(t, own, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, alice.ID, own[0].UserID)
}
