package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
)

// StatsService builds the staff overview
type StatsService struct {
	db        *gorm.DB
	issueRepo *repositories.IssueRepository
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db:        db,
		issueRepo: repositories.NewIssueRepository(db),
	}
}

// TopRatedBook is one row of the top-rated listing
type TopRatedBook struct {
	BookID        uint    `json:"book_id"`
	Title         string  `json:"title"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

// Overview is the staff dashboard payload
type Overview struct {
	TotalBooks   int64          `json:"total_books"`
	TotalAuthors int64          `json:"total_authors"`
	TotalUsers   int64          `json:"total_users"`
	ActiveLoans  int64          `json:"active_loans"`
	OverdueLoans int64          `json:"overdue_loans"`
	TopRated     []TopRatedBook `json:"top_rated"`
}

// GetOverview computes library-wide counters and the five best-rated books
func (s *StatsService) GetOverview(ctx context.Context) (*Overview, error) {
	overview := &Overview{}

	if err := s.db.WithContext(ctx).Model(&models.Book{}).Count(&overview.TotalBooks).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Author{}).Count(&overview.TotalAuthors).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&overview.TotalUsers).Error; err != nil {
		return nil, err
	}

	var err error
	if overview.ActiveLoans, err = s.issueRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	if overview.OverdueLoans, err = s.issueRepo.CountOverdue(ctx, time.Now()); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("ratings.book_id AS book_id, books.title AS title, AVG(ratings.score) AS average_rating, COUNT(ratings.id) AS rating_count").
		Joins("JOIN books ON books.id = ratings.book_id").
		Group("ratings.book_id, books.title").
		Order("average_rating DESC").
		Limit(5).
		Scan(&overview.TopRated).Error
	if err != nil {
		return nil, err
	}

	return overview, nil
}
