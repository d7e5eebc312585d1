package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"libraryhub/internal/adapters/persistence/repositories"
)

// CronService runs the scheduled maintenance jobs: overdue-loan reminder
// mail every morning and expired refresh-token cleanup nightly.
type CronService struct {
	cron        *cron.Cron
	issueRepo   *repositories.IssueRepository
	tokenRepo   repositories.RefreshTokenRepository
	mailService *MailService
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB, mailService *MailService) *CronService {
	return &CronService{
		cron:        cron.New(),
		issueRepo:   repositories.NewIssueRepository(db),
		tokenRepo:   repositories.NewRefreshTokenRepository(db),
		mailService: mailService,
	}
}

// Start schedules and launches the jobs
func (s *CronService) Start() {
	// Overdue reminders at 08:30 daily
	if _, err := s.cron.AddFunc("30 8 * * *", s.sendOverdueReminders); err != nil {
		log.Printf("⚠️ Failed to schedule overdue reminder job: %v", err)
	}

	// Expired token cleanup at 03:00 daily
	if _, err := s.cron.AddFunc("0 3 * * *", s.cleanupExpiredTokens); err != nil {
		log.Printf("⚠️ Failed to schedule token cleanup job: %v", err)
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop gracefully stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

// sendOverdueReminders mails every borrower holding an overdue book.
// Failures are per-send and already swallowed by the mail service.
func (s *CronService) sendOverdueReminders() {
	ctx := context.Background()
	today := time.Now()

	issues, err := s.issueRepo.ListOverdue(ctx, today)
	if err != nil {
		log.Printf("❌ Overdue reminder query error: %v", err)
		return
	}

	for _, issue := range issues {
		if issue.User == nil || issue.Book == nil {
			continue
		}
		s.mailService.SendOverdueNotice(issue.User, issue.Book, issue.DueDate)
	}

	if len(issues) > 0 {
		log.Printf("📬 Sent %d overdue reminder(s)", len(issues))
	}
}

func (s *CronService) cleanupExpiredTokens() {
	if err := s.tokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("❌ Token cleanup error: %v", err)
	}
}
