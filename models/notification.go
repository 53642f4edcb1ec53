package models

// NotificationPayload is the unit of work handed to the async delivery worker.
type NotificationPayload struct {
	Channel string            `json:"channel"` // "email" or "sms"
	To      string            `json:"to"`
	Subject string            `json:"subject,omitempty"`
	Template string           `json:"template"`
	Context map[string]string `json:"context,omitempty"`
}
