package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/config"
)

// MailService sends rental mail over SMTP. It is best-effort by
// contract: every send swallows its error after logging, and the service
// is a no-op when SMTP is not configured or the user has no address.
type MailService struct {
	cfg     config.SMTPConfig
	enabled bool
}

// NewMailService creates a new mail service
func NewMailService(cfg config.SMTPConfig) *MailService {
	return &MailService{
		cfg:     cfg,
		enabled: cfg.Host != "",
	}
}

// IsEnabled checks if mail sending is enabled
func (s *MailService) IsEnabled() bool {
	return s.enabled
}

// send delivers one message and reports failures to the log only
func (s *MailService) send(to, subject, body string) {
	if !s.enabled || to == "" {
		return
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := s.cfg.Host + ":" + s.cfg.Port
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("❌ Mail send failed (to=%s, subject=%q): %v", to, subject, err)
	}
}

// SendRentalConfirmation mails the borrower after a loan is created
func (s *MailService) SendRentalConfirmation(user *models.User, book *models.Book, dueDate time.Time) {
	body := fmt.Sprintf(
		"Hello, %s!\n\nYou have rented %q. Please return it by %s.",
		user.Username,
		book.Title,
		dueDate.Format("2006-01-02"),
	)
	s.send(user.Email, "Book rental confirmation", body)
}

// SendOverdueNotice mails the borrower about an overdue loan
func (s *MailService) SendOverdueNotice(user *models.User, book *models.Book, dueDate time.Time) {
	body := fmt.Sprintf(
		"Hello, %s!\n\nThe book %q was due on %s. Please return it as soon as possible.",
		user.Username,
		book.Title,
		dueDate.Format("2006-01-02"),
	)
	s.send(user.Email, "Overdue book reminder", body)
}
