package models

import "acecampus/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role  string `gorm:"default:'student'" json:"role,omitempty"`

	// Role upgrade request lives on the user row itself. Approving promotes
	// Role to RequestedRole; rejecting leaves Role untouched.
	RequestedRole       string                  `json:"requested_role,omitempty"`
	RoleRequestStatus   types.RoleRequestStatus `gorm:"default:'none'" json:"role_request_status,omitempty"`
	RoleRejectionReason *string                 `json:"role_rejection_reason,omitempty"`

	BookingRequests []BookingRequest `gorm:"foreignKey:requester_id" json:"booking_requests,omitempty"`
	EventBookings   []EventBooking   `gorm:"foreignKey:requester_id" json:"event_bookings,omitempty"`

	types.Timestamps
}
