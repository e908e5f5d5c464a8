package models

import (
	"acecampus/src/types"

	"github.com/google/uuid"
)

// PaymentOrder records every order registered with the gateway, keyed by the
// gateway's order id. A booking request may accumulate several orders when
// earlier payment attempts fail.
type PaymentOrder struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	OrderID          string              `gorm:"uniqueIndex" json:"order_id"`
	BookingRequestID uint                `json:"booking_request_id"`
	Amount           float64             `json:"amount"`
	Currency         string              `json:"currency"`
	Receipt          string              `json:"receipt"`
	Status           types.PaymentStatus `gorm:"default:'pending'" json:"status"`
	Metadata         types.JSONB         `gorm:"type:jsonb" json:"metadata,omitempty"`

	BookingRequest BookingRequest `gorm:"foreignKey:booking_request_id" json:"-"`

	types.Timestamps
}
