// Package receipt renders the printable appointment confirmation and the
// payment receipt, and archives receipts to object storage.
package receipt

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"salon/internal/domain"
)

const ContentType = "text/plain; charset=utf-8"

type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindReceipt      Kind = "receipt"
)

type Document struct {
	Kind     Kind
	Filename string
	Body     []byte
}

// Render returns the receipt for a paid appointment and the confirmation
// for every other status.
func Render(salonName string, appt domain.Appointment) Document {
	if appt.Status == domain.AppointmentStatusPaid {
		return RenderReceipt(salonName, appt)
	}
	return RenderConfirmation(salonName, appt)
}

func RenderConfirmation(salonName string, appt domain.Appointment) Document {
	var b strings.Builder

	b.WriteString(salonName + "\n\n")
	b.WriteString("Appointment detail\n\n")
	writeCommon(&b, appt)
	fmt.Fprintf(&b, "Price:   %s\n", FormatPrice(appt.Price))
	fmt.Fprintf(&b, "Status:  %s\n\n", appt.Status)
	fmt.Fprintf(&b, "Thank you for choosing %s!\n", salonName)

	return Document{
		Kind:     KindConfirmation,
		Filename: filename(appt, KindConfirmation),
		Body:     []byte(b.String()),
	}
}

func RenderReceipt(salonName string, appt domain.Appointment) Document {
	var b strings.Builder

	b.WriteString(salonName + " - Receipt\n\n")
	fmt.Fprintf(&b, "Receipt #%d\n\n", appt.ID)
	writeCommon(&b, appt)
	fmt.Fprintf(&b, "Paid:    %s\n", FormatPrice(appt.Price))
	fmt.Fprintf(&b, "Paid at: %s\n\n", appt.UpdatedAt.UTC().Format("2006-01-02 15:04 MST"))
	b.WriteString("Thank you!\n")

	return Document{
		Kind:     KindReceipt,
		Filename: filename(appt, KindReceipt),
		Body:     []byte(b.String()),
	}
}

func writeCommon(b *strings.Builder, appt domain.Appointment) {
	fmt.Fprintf(b, "Name:    %s\n", appt.ClientName)
	fmt.Fprintf(b, "Phone:   %s\n", appt.ClientPhone)
	fmt.Fprintf(b, "Service: %s\n", appt.Service)
	fmt.Fprintf(b, "Date:    %s\n", appt.Date.Format(domain.DateLayout))
	fmt.Fprintf(b, "Time:    %s - %s\n", appt.StartTime, appt.EndTime)
}

func FormatPrice(price int64) string {
	return "Rs. " + humanize.Comma(price)
}

func filename(appt domain.Appointment, kind Kind) string {
	name := strings.ToLower(strings.Join(strings.Fields(appt.ClientName), "_"))
	if name == "" {
		name = "client"
	}
	return fmt.Sprintf("%s_%d_%s.txt", name, appt.ID, kind)
}
