package request

import (
	"github.com/google/uuid"
)

type CreateTransactionRequest struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	Description string    `json:"description" binding:"required,max=200"`
	AmountCents int64     `json:"amount_cents" binding:"required,min=0"`
	Type        string    `json:"type" binding:"required,oneof=monthly one_off initial"`
	DueDate     *string   `json:"due_date,omitempty"`
}

type PaymentWebhookRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" binding:"required"`
	Approved      *bool     `json:"approved" binding:"required"`
}

func (r PaymentWebhookRequest) IsApproved() bool {
	return r.Approved != nil && *r.Approved
}
