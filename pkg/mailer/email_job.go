package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Subject/Text are used as-is; Template selects a canned body rendered by the
// worker ("delete_confirmation", "premium_welcome") with Data filling it in.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Template names understood by the email worker.
const (
	TemplateDeleteConfirmation = "delete_confirmation"
	TemplatePremiumWelcome     = "premium_welcome"
)
