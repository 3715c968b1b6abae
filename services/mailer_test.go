package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Govind-619/ebook-store/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (s *captureSender) DialAndSend(m ...*gomail.Message) error {
	s.messages = append(s.messages, m...)
	return s.err
}

func TestMailerNotifyStatusChange(t *testing.T) {
	sender := &captureSender{}
	mailer := NewMailerWithSender("store@example.com", sender)
	owner := &models.User{ID: 3, Username: "alice", Email: "alice@example.com"}
	order := &models.Order{ID: 42, Status: models.OrderStatusConfirmed, TotalPrice: 20}

	require.NoError(t, mailer.NotifyStatusChange(context.Background(), owner, order, models.OrderStatusPending))
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"store@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"Your order #42 is now Confirmed"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Pending")
}

func TestMailerEscapesUsername(t *testing.T) {
	sender := &captureSender{}
	mailer := NewMailerWithSender("store@example.com", sender)
	owner := &models.User{ID: 3, Username: "<b>bob</b>", Email: "bob@example.com"}
	order := &models.Order{ID: 7, Status: models.OrderStatusCancelled}

	require.NoError(t, mailer.NotifyStatusChange(context.Background(), owner, order, models.OrderStatusPending))
	require.Len(t, sender.messages, 1)

	var buf bytes.Buffer
	_, err := sender.messages[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;b&gt;bob&lt;/b&gt;")
	assert.NotContains(t, buf.String(), "<b>bob</b>")
}

func TestMailerSkipsOwnersWithoutEmail(t *testing.T) {
	sender := &captureSender{}
	mailer := NewMailerWithSender("store@example.com", sender)

	require.NoError(t, mailer.NotifyStatusChange(context.Background(), &models.User{ID: 1}, &models.Order{ID: 1}, models.OrderStatusPending))
	assert.Empty(t, sender.messages)
}

func TestMailerReportsSendFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("connection refused")}
	mailer := NewMailerWithSender("store@example.com", sender)

	err := mailer.NotifyStatusChange(context.Background(), &models.User{Email: "a@example.com"}, &models.Order{ID: 1}, models.OrderStatusPending)
	assert.ErrorContains(t, err, "connection refused")
}
