package services

import (
	"context"
	"fmt"
	"html"

	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"gopkg.in/gomail.v2"
)

// MailConfig holds SMTP settings
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers a prepared message
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends order status notifications over SMTP
type Mailer struct {
	from   string
	sender Sender
}

// NewMailer returns a Mailer dialing the configured SMTP server
func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{
		from:   cfg.From,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NewMailerWithSender returns a Mailer using sender, mainly for tests
func NewMailerWithSender(from string, sender Sender) *Mailer {
	return &Mailer{from: from, sender: sender}
}

// NotifyStatusChange emails the order owner about the new status
func (m *Mailer) NotifyStatusChange(ctx context.Context, owner *models.User, order *models.Order, previous string) error {
	if owner.Email == "" {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", owner.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status))
	msg.SetBody("text/html", fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>The status of your order <strong>#%d</strong> changed from %s to <strong>%s</strong>.</p>
		<p>Order total: %.2f</p>
	`, html.EscapeString(owner.Username), order.ID, html.EscapeString(previous), html.EscapeString(order.Status), order.TotalPrice))

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	utils.LogInfo("Status notification sent for order %d to %s", order.ID, owner.Email)
	return nil
}

// LogNotifier only logs status changes. It is used when SMTP is not configured.
type LogNotifier struct{}

func (LogNotifier) NotifyStatusChange(ctx context.Context, owner *models.User, order *models.Order, previous string) error {
	utils.LogInfo("Order %d for user %d moved %s -> %s (email disabled)", order.ID, owner.ID, previous, order.Status)
	return nil
}
