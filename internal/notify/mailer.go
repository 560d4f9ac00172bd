// internal/notify/mailer.go
package notify

import (
	"fmt"
	"net/smtp"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/panjabighar/panjabi-backend/internal/config"
)

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	Message string
}

// SendFunc delivers one email. Swapped out in tests.
type SendFunc func(email Email) error

// Mailer dispatches emails through a bounded queue drained by a single
// worker goroutine. Enqueue never blocks the caller and delivery failures
// are logged, never surfaced: a lost confirmation email must not fail or
// delay the order that triggered it.
type Mailer struct {
	queue    chan Email
	send     SendFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewMailer(cfg config.EmailConfig) *Mailer {
	m := &Mailer{
		queue: make(chan Email, cfg.QueueSize),
		send:  smtpSender(cfg),
	}
	m.start()
	return m
}

// NewMailerWithSender builds a mailer around a custom delivery function.
func NewMailerWithSender(queueSize int, send SendFunc) *Mailer {
	m := &Mailer{
		queue: make(chan Email, queueSize),
		send:  send,
	}
	m.start()
	return m
}

func (m *Mailer) start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for email := range m.queue {
			if err := m.send(email); err != nil {
				logrus.WithError(err).WithField("to", email.To).Error("Failed to send email")
			}
		}
	}()
}

// Enqueue hands an email to the worker. When the queue is full the email is
// dropped and logged; delivery is at-most-once and un-retried.
func (m *Mailer) Enqueue(to string, subject, message string) {
	if to == "" {
		return
	}

	email := Email{To: to, Subject: subject, Message: message}
	select {
	case m.queue <- email:
	default:
		logrus.WithField("to", to).Warn("Email queue full, dropping message")
	}
}

// Close stops accepting emails and waits for the queue to drain.
func (m *Mailer) Close() {
	m.stopOnce.Do(func() {
		close(m.queue)
	})
	m.wg.Wait()
}

func smtpSender(cfg config.EmailConfig) SendFunc {
	return func(email Email) error {
		if cfg.SMTPHost == "" {
			// Email not configured, just log
			logrus.WithFields(logrus.Fields{
				"to":      email.To,
				"subject": email.Subject,
			}).Info("Email delivery skipped (SMTP not configured)")
			return nil
		}

		auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

		msg := []byte(fmt.Sprintf(
			"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n<p>%s</p>",
			cfg.FromName, cfg.FromEmail, email.To, email.Subject, email.Message,
		))

		addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
		return smtp.SendMail(addr, auth, cfg.FromEmail, []string{email.To}, msg)
	}
}
