package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"salon/internal/domain"
	"salon/internal/storage"
)

// Archiver stores a copy of every payment receipt. It listens on the
// appointment event stream and reacts to the transition into paid.
type Archiver struct {
	storage   storage.FileStorage
	salonName string
	logger    *zap.Logger
}

func NewArchiver(fs storage.FileStorage, salonName string, logger *zap.Logger) *Archiver {
	return &Archiver{
		storage:   fs,
		salonName: salonName,
		logger:    logger,
	}
}

func (a *Archiver) Publish(ctx context.Context, event domain.AppointmentEvent) error {
	if event.Type != domain.EventAppointmentStatusChanged || event.Appointment.Status != domain.AppointmentStatusPaid {
		return nil
	}

	key, err := a.Archive(ctx, event.Appointment)
	if err != nil {
		return err
	}

	a.logger.Info("receipt archived", zap.Int64("id", event.Appointment.ID), zap.String("key", key))
	return nil
}

// Archive uploads the receipt and returns its object key.
func (a *Archiver) Archive(ctx context.Context, appt domain.Appointment) (string, error) {
	doc := RenderReceipt(a.salonName, appt)

	key, err := a.storage.UploadFile(ctx, doc.Body, ObjectName(appt), ContentType)
	if err != nil {
		return "", fmt.Errorf("archive receipt %d: %w", appt.ID, err)
	}
	return key, nil
}

// Link returns a time-limited download URL for an archived receipt.
func (a *Archiver) Link(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return a.storage.GetPresignedURL(ctx, key, expiry)
}

// ObjectName groups receipts by appointment date. The random suffix keeps
// earlier copies when an appointment is archived more than once.
func ObjectName(appt domain.Appointment) string {
	return fmt.Sprintf("receipts/%s/%d-%s.txt", appt.Date.Format(domain.DateLayout), appt.ID, uuid.NewString())
}
