package email

// SendWelcomeEmail sends a welcome email to a newly created user
// account.
func (c *Client) SendWelcomeEmail(to, firstName string) error {
	data := map[string]string{
		"UserFirstName": firstName,
	}

	return c.SendEmail(
		to,
		"Welcome to DonorOps",
		TemplateWelcome,
		data,
	)
}

// SendReceiptEmail sends a tax receipt acknowledgment for a recorded
// gift.
func (c *Client) SendReceiptEmail(to, donorName, amount, currency, giftDate, receiptNumber string) error {
	data := map[string]string{
		"DonorName":     donorName,
		"Amount":        amount,
		"Currency":      currency,
		"GiftDate":      giftDate,
		"ReceiptNumber": receiptNumber,
	}

	return c.SendEmail(
		to,
		"Your donation receipt",
		TemplateReceipt,
		data,
	)
}

// SendPledgeReminderEmail notifies a donor that a pledge installment
// is past due.
func (c *Client) SendPledgeReminderEmail(to, donorName, amount, currency, dueDate string) error {
	data := map[string]string{
		"DonorName": donorName,
		"Amount":    amount,
		"Currency":  currency,
		"DueDate":   dueDate,
	}

	return c.SendEmail(
		to,
		"Pledge installment reminder",
		TemplatePledgeReminder,
		data,
	)
}
