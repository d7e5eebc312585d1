package config

import (
	"log"
	"time"

	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/domain"
	"libraryhub/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Each seeder is idempotent.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedStaffUser(); err != nil {
		log.Printf("⚠️ Staff seeder skipped: %v", err)
	}
	if err := s.seedCatalog(); err != nil {
		log.Printf("⚠️ Catalog seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedStaffUser seeds the default staff user.
// This is for development/testing only.
func (s *Seeder) seedStaffUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleStaff)).Count(&count)
	if count > 0 {
		return nil // Staff already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	staff := &models.User{
		Username: "admin",
		Email:    "admin@library.local",
		Password: hashedPassword,
		Role:     string(domain.RoleStaff),
		IsActive: true,
	}

	if err := s.db.Create(staff).Error; err != nil {
		return err
	}

	log.Printf("✅ Staff user created: %s", staff.Username)
	return nil
}

// seedCatalog seeds a small sample catalog for development
func (s *Seeder) seedCatalog() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil // Catalog already populated
	}

	born := time.Date(1821, 11, 11, 0, 0, 0, 0, time.UTC)
	author := &models.Author{
		FirstName: "Fyodor",
		LastName:  "Dostoevsky",
		BirthDate: &born,
	}
	if err := s.db.Create(author).Error; err != nil {
		return err
	}

	published := time.Date(1866, 1, 1, 0, 0, 0, 0, time.UTC)
	book := &models.Book{
		Title:         "Crime and Punishment",
		Genre:         "Novel",
		PublishedDate: &published,
		Description:   "A study of guilt and redemption in St. Petersburg.",
		Authors:       []*models.Author{author},
	}
	if err := s.db.Create(book).Error; err != nil {
		return err
	}

	log.Printf("✅ Sample catalog created: %d book(s)", 1)
	return nil
}
