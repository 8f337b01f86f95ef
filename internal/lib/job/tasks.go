package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis. Asynq routes on these strings.
const (
	TaskWelcome      = "email:welcome"
	TaskReceipt      = "email:receipt"
	TaskOverdueSweep = "pledge:overdue_sweep"
)

// WelcomeEmailPayload is the JSON payload for the welcome email task.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// ReceiptEmailPayload is the JSON payload for the gift receipt task.
type ReceiptEmailPayload struct {
	To            string `json:"to"`
	DonorName     string `json:"donor_name"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	GiftDate      string `json:"gift_date"`
	ReceiptNumber string `json:"receipt_number"`
}

// NewWelcomeEmailTask constructs a task for sending a welcome email.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewReceiptEmailTask constructs a task for sending a gift receipt.
// Receipts go into the critical queue since donors expect them
// promptly after a gift is acknowledged.
func NewReceiptEmailTask(p ReceiptEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReceipt,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
