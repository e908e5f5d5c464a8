package models

import (
	"acecampus/src/types"
	"time"
)

// BookingRequest is a venue reservation for a single calendar day. Its status
// only moves through common.Apply; StatusHistory grows by exactly one entry
// per accepted transition.
type BookingRequest struct {
	ID                uint                `gorm:"primarykey" json:"id"`
	VenueID           uint                `json:"venue_id,omitempty"`
	RequesterID       uint                `json:"requester_id,omitempty"`
	RequesterRole     string              `json:"requester_role,omitempty"`
	EventName         string              `json:"event_name,omitempty"`
	EventDate         time.Time           `json:"event_date,omitempty"`
	EventStartTime    string              `json:"event_start_time,omitempty"`
	EventEndTime      string              `json:"event_end_time,omitempty"`
	ExpectedAttendees uint                `json:"expected_attendees,omitempty"`
	Purpose           string              `json:"purpose,omitempty"`
	OrganizerName     string              `json:"organizer_name,omitempty"`
	OrganizerEmail    string              `json:"organizer_email,omitempty"`
	Status            types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	RejectionReason   *string             `json:"rejection_reason,omitempty"`
	RentAmount        float64             `json:"rent_amount,omitempty"`
	PaymentStatus     types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`
	PaymentOrderID    *string             `json:"payment_order_id,omitempty"`
	PaymentID         *string             `json:"payment_id,omitempty"`
	StatusHistory     types.StatusHistory `gorm:"type:jsonb" json:"status_history,omitempty"`

	Venue     *Venue `gorm:"foreignKey:venue_id" json:"venue,omitempty"`
	Requester *User  `gorm:"foreignKey:requester_id" json:"requester,omitempty"`

	types.Timestamps
}

// EventBooking is a registration for a campus event. Same lifecycle contract
// as BookingRequest, with the event seat pool as the capacity ceiling.
type EventBooking struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	EventID       uint                `json:"event_id,omitempty"`
	RequesterID   uint                `json:"requester_id,omitempty"`
	RequesterRole string              `json:"requester_role,omitempty"`
	Attendees       uint                `gorm:"default:1" json:"attendees,omitempty"`
	TotalAmount     float64             `json:"total_amount,omitempty"`
	Status          types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
	PaymentStatus   types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`
	StatusHistory   types.StatusHistory `gorm:"type:jsonb" json:"status_history,omitempty"`

	Event     *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`
	Requester *User  `gorm:"foreignKey:requester_id" json:"requester,omitempty"`

	types.Timestamps
}
