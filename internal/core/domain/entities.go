package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleVisitor Role = "VISITOR"
	RoleMember  Role = "MEMBER"
	RoleStaff   Role = "STAFF"
)

// Capability is an explicit grant attached to an identity, replacing
// runtime group-membership lookups.
type Capability string

const (
	// CapManageCatalog lets a non-staff user create and edit books and authors.
	CapManageCatalog Capability = "manage_catalog"
)

// Identity is the acting identity of a request. The zero value is anonymous.
type Identity struct {
	UserID       uint
	Username     string
	Role         Role
	Capabilities []Capability
}

// Anonymous is the identity of an unauthenticated request.
var Anonymous = Identity{}

// IsAnonymous reports whether the identity carries no authenticated user.
func (i Identity) IsAnonymous() bool {
	return i.UserID == 0
}

// IsStaff reports whether the identity has elevated rights.
func (i Identity) IsStaff() bool {
	return i.Role == RoleStaff
}

// Has reports whether the identity carries the given capability.
func (i Identity) Has(cap Capability) bool {
	for _, c := range i.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

// Author represents a book author in the domain layer
type Author struct {
	ID        uint
	FirstName string
	LastName  string
	BirthDate *time.Time
	PhotoURL  string
	// AverageRating is the mean score over all books by this author,
	// nil when none of their books has been rated.
	AverageRating *float64
}

// Book represents a book in the domain layer
type Book struct {
	ID            uint
	Title         string
	Genre         string
	PublishedDate *time.Time
	Description   string
	CoverURL      string
	Authors       []Author
	// AverageRating is the mean score over this book's ratings, 0 when none.
	AverageRating float64
}

// BookIssue represents a rental of a book to a user
type BookIssue struct {
	ID           uint
	BookID       uint
	UserID       uint
	IssueDate    time.Time
	RentalPeriod int // days
	DueDate      time.Time
	ReturnDate   *time.Time
}

// IsReturned reports whether the issue has been closed.
func (bi *BookIssue) IsReturned() bool {
	return bi.ReturnDate != nil
}

// Rating is a user's score of a book, at most one per (book, user) pair
type Rating struct {
	ID        uint
	BookID    uint
	UserID    uint
	Score     int // 1..5
	Review    string
	CreatedAt time.Time
}

// Comment is a user's free-text note on a book
type Comment struct {
	ID        uint
	BookID    uint
	UserID    uint
	Text      string
	CreatedAt time.Time
}

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // Hashed; empty for visitor accounts
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RentalPeriodDefault is the rental period in days applied when the
// request carries none. There is deliberately no upper bound.
const RentalPeriodDefault = 14
