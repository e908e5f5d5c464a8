package models

import "acecampus/src/types"

type Venue struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	Name       string  `json:"name,omitempty"`
	Slug       string  `gorm:"uniqueIndex" json:"slug,omitempty"`
	Location   string  `json:"location,omitempty"`
	Capacity   uint    `json:"capacity,omitempty"`
	RentPerDay float64 `json:"rent_per_day,omitempty"`
	About      *string `json:"about,omitempty"`
	CreatedBy  uint    `json:"created_by,omitempty"`

	Creator  User             `gorm:"foreignKey:created_by" json:"-"`
	Requests []BookingRequest `gorm:"foreignKey:venue_id" json:"requests,omitempty"`

	types.Timestamps
}
