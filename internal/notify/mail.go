// Package notify e-mails the salon owner about new bookings and payments.
package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"salon/config"
	"salon/internal/domain"
	"salon/internal/receipt"
)

type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailNotifier struct {
	sender    Sender
	from      string
	to        string
	salonName string
	logger    *zap.Logger
}

func NewMailNotifier(cfg config.SMTPConfig, salonName string, logger *zap.Logger) *MailNotifier {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewMailNotifierWithSender(dialer, cfg.From, cfg.OwnerEmail, salonName, logger)
}

func NewMailNotifierWithSender(sender Sender, from, to, salonName string, logger *zap.Logger) *MailNotifier {
	return &MailNotifier{
		sender:    sender,
		from:      from,
		to:        to,
		salonName: salonName,
		logger:    logger,
	}
}

func (n *MailNotifier) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	msg := n.message(event)
	if msg == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := n.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail %s for appointment %d: %w", event.Type, event.Appointment.ID, err)
	}

	n.logger.Debug("owner notified", zap.String("type", string(event.Type)), zap.Int64("id", event.Appointment.ID))
	return nil
}

// message returns nil for events the owner is not told about.
func (n *MailNotifier) message(event domain.AppointmentEvent) *gomail.Message {
	appt := event.Appointment

	var subject string
	var doc receipt.Document
	switch {
	case event.Type == domain.EventAppointmentBooked:
		subject = fmt.Sprintf("New booking: %s on %s at %s", appt.ClientName, appt.Date.Format(domain.DateLayout), appt.StartTime)
		doc = receipt.RenderConfirmation(n.salonName, appt)
	case event.Type == domain.EventAppointmentStatusChanged && appt.Status == domain.AppointmentStatusPaid:
		subject = fmt.Sprintf("Payment received: %s, %s", appt.ClientName, receipt.FormatPrice(appt.Price))
		doc = receipt.RenderReceipt(n.salonName, appt)
	default:
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", strings.TrimSpace(subject))
	m.SetBody("text/plain", string(doc.Body))
	return m
}
