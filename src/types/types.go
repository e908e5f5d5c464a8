package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

// StatusEntry is a single line of a request's audit trail. Entries are only
// ever appended, never edited; the timestamp is server-generated.
type StatusEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

type StatusHistory []StatusEntry

func (h StatusHistory) Value() (driver.Value, error) {
	valueString, err := json.Marshal(h)
	return string(valueString), err
}
func (h *StatusHistory) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &h); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_PENDING         BookingStatus = "pending"
	BOOKING_APPROVED        BookingStatus = "approved"
	BOOKING_PAYMENT_PENDING BookingStatus = "payment_pending"
	BOOKING_COMPLETED       BookingStatus = "completed"
	BOOKING_REJECTED        BookingStatus = "rejected"
	BOOKING_CANCELED        BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "pending"
	PAYMENT_PAID     PaymentStatus = "paid"
	PAYMENT_FAILED   PaymentStatus = "failed"
	PAYMENT_REFUNDED PaymentStatus = "refunded"
)

type BookingAction string

const (
	ACTION_APPROVE   BookingAction = "approve"
	ACTION_REJECT    BookingAction = "reject"
	ACTION_CANCEL    BookingAction = "cancel"
	ACTION_MARK_PAID BookingAction = "markPaid"
)

type RoleRequestStatus string

const (
	ROLE_REQUEST_NONE     RoleRequestStatus = "none"
	ROLE_REQUEST_PENDING  RoleRequestStatus = "pending"
	ROLE_REQUEST_APPROVED RoleRequestStatus = "approved"
	ROLE_REQUEST_REJECTED RoleRequestStatus = "rejected"
)

type EventStatus string

const (
	EVENT_DRAFT     EventStatus = "draft"
	EVENT_OPEN      EventStatus = "open"
	EVENT_CLOSED    EventStatus = "closed"
	EVENT_COMPLETED EventStatus = "completed"
	EVENT_CANCELED  EventStatus = "cancelled"
)

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role,omitempty" binding:"omitempty,oneof=student teacher"`
}

type LoginRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type CreateVenueRequestBody struct {
	Name       string  `json:"name" binding:"required"`
	Location   string  `json:"location" binding:"required"`
	Capacity   uint    `json:"capacity" binding:"required,gt=0"`
	RentPerDay float64 `json:"rent_per_day,omitempty" binding:"omitempty,gte=0"`
	About      string  `json:"about,omitempty"`
}

type CreateVenueBookingRequestBody struct {
	VenueID           uint   `json:"venueId" binding:"required"`
	EventName         string `json:"eventName" binding:"required"`
	EventDate         string `json:"eventDate" binding:"required,bookabledate"`
	EventStartTime    string `json:"eventStartTime" binding:"required"`
	EventEndTime      string `json:"eventEndTime" binding:"required,gttime=EventStartTime"`
	ExpectedAttendees uint   `json:"expectedAttendees" binding:"required,gt=0"`
	Purpose           string `json:"purpose" binding:"required"`
	OrganizerName     string `json:"organizerName" binding:"required"`
	OrganizerEmail    string `json:"organizerEmail" binding:"required,email"`
}

type CreateEventRequestBody struct {
	Title    string  `json:"title" binding:"required"`
	About    string  `json:"about,omitempty"`
	VenueID  *uint   `json:"venue,omitempty"`
	DateTime string  `json:"date_time" binding:"required,eventdatetime"`
	Deadline string  `json:"deadline" binding:"required,eventdatetime,ltdate=DateTime"`
	Seats    uint    `json:"seats" binding:"required,gt=0"`
	Fee      float64 `json:"fee,omitempty" binding:"omitempty,gte=0"`
	Publish  bool    `json:"publish,omitempty"`
}

type DecisionRequestBody struct {
	Action          BookingAction `json:"action" binding:"required,oneof=approve reject cancel"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	RentAmount      float64       `json:"rentAmount,omitempty" binding:"omitempty,gte=0"`
}

type RoleDecisionRequestBody struct {
	UserID          uint          `json:"userId" binding:"required"`
	Action          BookingAction `json:"action" binding:"required,oneof=approve reject"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
}

type CreateRoleRequestBody struct {
	RequestedRole string `json:"requestedRole" binding:"required,oneof=organizer"`
}

type CreateRentOrderRequestBody struct {
	BookingRequestID uint `json:"bookingRequestId" binding:"required"`
}

type VerifyRentPaymentRequestBody struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	BookingRequestID  uint   `json:"bookingRequestId" binding:"required"`
}
