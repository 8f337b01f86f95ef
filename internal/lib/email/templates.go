package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"

	// TemplateReceipt corresponds to templates/receipt.html
	TemplateReceipt Template = "receipt"

	// TemplatePledgeReminder corresponds to templates/pledge_reminder.html
	TemplatePledgeReminder Template = "pledge_reminder"
)

// PreviewData contains sample template data for local preview and
// template tests.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "Jordan",
	},
	TemplateReceipt: {
		"DonorName":     "Alex Rivera",
		"Amount":        "250.00",
		"Currency":      "USD",
		"GiftDate":      "2025-11-04",
		"ReceiptNumber": "RCPT-2025-000123",
	},
	TemplatePledgeReminder: {
		"DonorName": "Alex Rivera",
		"Amount":    "500.00",
		"Currency":  "USD",
		"DueDate":   "2025-12-01",
	},
}
