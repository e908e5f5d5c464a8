package models

import (
	"acecampus/src/types"
	"time"
)

type Event struct {
	ID        uint              `gorm:"primarykey" json:"id"`
	Title     string            `json:"title,omitempty"`
	About     *string           `json:"about,omitempty"`
	VenueID   *uint             `json:"venue_id,omitempty"`
	DateTime  time.Time         `json:"date_time,omitempty"`
	Deadline  time.Time         `json:"deadline,omitempty"`
	Seats     uint              `json:"seats,omitempty"`
	Fee       float64           `json:"fee,omitempty"`
	Status    types.EventStatus `gorm:"default:'draft'" json:"status,omitempty"`
	CreatedBy uint              `json:"created_by,omitempty"`

	Creator  User           `gorm:"foreignKey:created_by" json:"-"`
	Venue    *Venue         `gorm:"foreignKey:venue_id" json:"venue,omitempty"`
	Bookings []EventBooking `gorm:"foreignKey:event_id" json:"bookings,omitempty"`

	types.Timestamps
}
