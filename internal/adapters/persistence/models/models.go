package models

import (
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/core/domain"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Username         string         `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email            string         `gorm:"size:255;index" json:"email"`
	Password         string         `gorm:"size:255" json:"-"` // empty for visitor accounts
	Role             string         `gorm:"size:20;default:'MEMBER'" json:"role"`
	CanManageCatalog bool           `gorm:"default:false" json:"can_manage_catalog"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Identity builds the request identity for this user.
func (u *User) Identity() domain.Identity {
	id := domain.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Role:     domain.Role(u.Role),
	}
	if u.CanManageCatalog {
		id.Capabilities = append(id.Capabilities, domain.CapManageCatalog)
	}
	return id
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Catalog Tables
// ============================================================

// Author represents authors table
type Author struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FirstName string     `gorm:"size:100;not null" json:"first_name"`
	LastName  string     `gorm:"size:100;not null;index" json:"last_name"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date"`
	PhotoURL  string     `gorm:"size:500" json:"photo_url"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Books []*Book `gorm:"many2many:book_authors" json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

// AuthorResponse DTO. AverageRating is nil when none of the author's
// books has been rated.
type AuthorResponse struct {
	ID            uint       `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	BirthDate     *time.Time `json:"birth_date"`
	PhotoURL      string     `json:"photo_url,omitempty"`
	AverageRating *float64   `json:"average_rating"`
}

func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		BirthDate: a.BirthDate,
		PhotoURL:  a.PhotoURL,
	}
}

// Book represents books table
type Book struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null;index" json:"title"`
	Genre         string     `gorm:"size:100" json:"genre"`
	PublishedDate *time.Time `gorm:"type:date" json:"published_date"`
	Description   string     `gorm:"type:text" json:"description"`
	CoverURL      string     `gorm:"size:500" json:"cover_url"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Authors []*Author `gorm:"many2many:book_authors" json:"authors,omitempty"`
}

func (Book) TableName() string {
	return "books"
}

// BookResponse DTO. AverageRating defaults to 0 when the book has no
// ratings (asymmetric with AuthorResponse on purpose).
type BookResponse struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Genre         string            `json:"genre,omitempty"`
	PublishedDate *time.Time        `json:"published_date"`
	Description   string            `json:"description,omitempty"`
	CoverURL      string            `json:"cover_url,omitempty"`
	Authors       []*AuthorResponse `json:"authors"`
	AverageRating float64           `json:"average_rating"`
}

func (b *Book) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Genre:         b.Genre,
		PublishedDate: b.PublishedDate,
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		Authors:       make([]*AuthorResponse, 0, len(b.Authors)),
	}
	for _, a := range b.Authors {
		resp.Authors = append(resp.Authors, a.ToResponse())
	}
	return resp
}

// ============================================================
// Loan, Rating & Comment Tables
// ============================================================

// BookIssue represents book_issues table (one rental of a book to a user)
type BookIssue struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BookID       uint       `gorm:"not null;index" json:"book_id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	IssueDate    time.Time  `gorm:"type:date;not null" json:"issue_date"`
	RentalPeriod int        `gorm:"not null;default:14" json:"rental_period"`
	DueDate      time.Time  `gorm:"type:date;not null;index" json:"due_date"`
	ReturnDate   *time.Time `gorm:"type:date" json:"return_date"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (BookIssue) TableName() string {
	return "book_issues"
}

// OwnerID implements domain.Owned.
func (bi *BookIssue) OwnerID() uint {
	return bi.UserID
}

func (bi *BookIssue) IsReturned() bool {
	return bi.ReturnDate != nil
}

// BookIssueResponse DTO
type BookIssueResponse struct {
	ID           uint          `json:"id"`
	BookID       uint          `json:"book_id"`
	Book         *BookResponse `json:"book,omitempty"`
	UserID       uint          `json:"user_id"`
	IssueDate    time.Time     `json:"issue_date"`
	RentalPeriod int           `json:"rental_period"`
	DueDate      time.Time     `json:"due_date"`
	ReturnDate   *time.Time    `json:"return_date"`
	IsReturned   bool          `json:"is_returned"`
}

func (bi *BookIssue) ToResponse() *BookIssueResponse {
	resp := &BookIssueResponse{
		ID:           bi.ID,
		BookID:       bi.BookID,
		UserID:       bi.UserID,
		IssueDate:    bi.IssueDate,
		RentalPeriod: bi.RentalPeriod,
		DueDate:      bi.DueDate,
		ReturnDate:   bi.ReturnDate,
		IsReturned:   bi.IsReturned(),
	}
	if bi.Book != nil {
		resp.Book = bi.Book.ToResponse()
	}
	return resp
}

// Rating represents ratings table. The composite unique index enforces
// one rating per (book, user) pair at the storage layer, independent of
// the service-level pre-check.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_ratings_book_user" json:"book_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_book_user" json:"user_id"`
	Score     int       `gorm:"not null" json:"score"`
	Review    string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Book *Book `gorm:"foreignKey:BookID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

// OwnerID implements domain.Owned.
func (r *Rating) OwnerID() uint {
	return r.UserID
}

// RatingResponse DTO
type RatingResponse struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"book_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Score     int       `json:"score"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Rating) ToResponse() *RatingResponse {
	resp := &RatingResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Score:     r.Score,
		Review:    r.Review,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		resp.Username = r.User.Username
	}
	return resp
}

// Comment represents comments table
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"not null;index" json:"book_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Book *Book `gorm:"foreignKey:BookID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// OwnerID implements domain.Owned.
func (c *Comment) OwnerID() uint {
	return c.UserID
}

// CommentResponse DTO
type CommentResponse struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"book_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) ToResponse() *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		BookID:    c.BookID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.Username = c.User.Username
	}
	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Author{},
		&Book{},
		&BookIssue{},
		&Rating{},
		&Comment{},
	)
}
