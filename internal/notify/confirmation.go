package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	ConfirmationSubject = "Your Puertollano Dental Appointment is Confirmed"
	LongDateLayout      = "Monday, January 2, 2006"
)

var confirmationHTML = template.Must(template.New("confirmation").Parse(
	`<p>Dear {{.Name}},</p>` +
		`<p>Your appointment has been <b>accepted</b>.</p>` +
		`<p><b>Booking Confirmation ID:</b> <span style="font-size:1.2em">{{.Code}}</span></p>` +
		`<ul><li><b>Date:</b> {{.Date}}</li><li><b>Time:</b> {{.Time}}</li><li><b>Branch:</b> {{.Branch}}</li></ul>` +
		`<p>Please keep this ID for your records.<br>Thank you!</p>`,
))

type confirmationData struct {
	Name   string
	Code   string
	Date   string
	Time   string
	Branch string
}

// LongDate renders "2025-09-10" as "Wednesday, September 10, 2025".
// Unparseable input is returned unchanged.
func LongDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format(LongDateLayout)
}

// AcceptedConfirmation builds the mail sent when staff accept an appointment.
func AcceptedConfirmation(ap *models.Appointment) (Message, error) {
	if ap.BookingCode == nil {
		return Message{}, fmt.Errorf("appointment %d has no booking code", ap.ID)
	}

	data := confirmationData{
		Name:   ap.Name,
		Code:   *ap.BookingCode,
		Date:   LongDate(ap.Date),
		Time:   ap.Time,
		Branch: ap.Branch,
	}

	text := fmt.Sprintf(
		"Dear %s,\n\nYour appointment has been accepted. Your booking confirmation ID is %s.\n\n"+
			"Date: %s\nTime: %s\nBranch: %s\n\nPlease keep this ID for your records.\n\nThank you!",
		data.Name, data.Code, data.Date, data.Time, data.Branch,
	)

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render confirmation: %w", err)
	}

	return Message{
		To:      ap.Email,
		Subject: ConfirmationSubject,
		Text:    text,
		HTML:    html.String(),
	}, nil
}
