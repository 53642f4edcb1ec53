package notification

import (
	"bytes"
	"fmt"
	"text/template"
)

// Delivery channels.
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Template names.
const (
	TemplateBookingCreated = "booking_created"
	TemplateBookingStatus  = "booking_status"
)

var bodyTemplates = map[string]*template.Template{
	TemplateBookingCreated: template.Must(template.New(TemplateBookingCreated).Parse(
		"Hi {{.name}},\n\n" +
			"Your pod booking {{.reference}} for {{.date}} has been received and is " +
			"awaiting payment verification.\n" +
			"Total: RM{{.amount}}\n\n" +
			"The BuskPod team",
	)),
	TemplateBookingStatus: template.Must(template.New(TemplateBookingStatus).Parse(
		"Hi {{.name}},\n\n" +
			"Your pod booking {{.reference}} for {{.date}} is now {{.status}}.\n\n" +
			"The BuskPod team",
	)),
}

var subjects = map[string]string{
	TemplateBookingCreated: "Booking received",
	TemplateBookingStatus:  "Booking update",
}

// RenderBody fills the named template with the payload context.
func RenderBody(name string, context map[string]string) (string, error) {
	tmpl, ok := bodyTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown notification template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", fmt.Errorf("error rendering template %s: %w", name, err)
	}
	return buf.String(), nil
}

// SubjectFor returns the email subject for a template.
func SubjectFor(name string) string {
	if s, ok := subjects[name]; ok {
		return s
	}
	return "BuskPod notification"
}
