package notifications

import (
	"html/template"
	"strings"

	"github.com/suinigeria/events-api/internal/domain/registration"
)

// Email bodies carried over from the marketing site, with user-supplied values run
// through html/template so names like "<b>Ada" cannot break the markup.

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #25B96B;">Registration Confirmation</h1>
  <p>Hello {{.FullName}},</p>
  <p>Thank you for registering for the {{.EventTitle}}. We're excited to have you join us!</p>
  <p>Your registration is currently pending approval. We'll send you another email once your registration is confirmed.</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <h2 style="color: #1A4D2E; margin-top: 0;">Event Details</h2>
    <p style="margin-bottom: 0;"><strong>Event:</strong> {{.EventTitle}}</p>
  </div>
  <p>If you have any questions, please don't hesitate to reach out to us.</p>
  <p>Best regards,<br>Sui Nigeria Team</p>
</div>`))

var statusUpdateTmpl = template.Must(template.New("status").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #25B96B;">Registration {{.Heading}}</h1>
  <p>Hello {{.FullName}},</p>
  <p>{{.Body}}</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <h2 style="color: #1A4D2E; margin-top: 0;">Event Details</h2>
    <p style="margin-bottom: 0;"><strong>Event:</strong> {{.EventTitle}}</p>
  </div>
  <p>If you have any questions, please don't hesitate to reach out to us.</p>
  <p>Best regards,<br>Sui Nigeria Team</p>
</div>`))

func renderConfirmation(fullName, eventTitle string) (subject, html string) {
	var b strings.Builder

	_ = confirmationTmpl.Execute(&b, struct {
		FullName   string
		EventTitle string
	}{fullName, eventTitle})

	return "Registration Confirmation - Sui Nigeria Event", b.String()
}

func renderStatusUpdate(fullName, eventTitle string, status registration.Status) (subject, html string) {
	var heading, body string

	switch status {
	case registration.StatusApproved:
		subject = "Registration Approved - Sui Nigeria Event"
		heading = "Approved"
		body = "Your registration has been approved! We look forward to seeing you at the event."
	case registration.StatusRejected:
		subject = "Registration Update - Sui Nigeria Event"
		heading = "Update"
		body = "Unfortunately, we are unable to accommodate your registration at this time."
	default:
		subject = "Registration Update - Sui Nigeria Event"
		heading = "Update"
		body = "Your registration has been moved back under review. We'll be in touch once it is confirmed."
	}

	var b strings.Builder

	_ = statusUpdateTmpl.Execute(&b, struct {
		Heading    string
		FullName   string
		Body       string
		EventTitle string
	}{heading, fullName, body, eventTitle})

	return subject, b.String()
}
