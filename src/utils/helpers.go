package utils

import (
	"acecampus/src/common"
	"acecampus/src/config"
	"acecampus/src/db"
	"acecampus/src/lib"
	"acecampus/src/models"
	"acecampus/src/types"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userId uint, role string) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		Username: email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userId),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// blockingStatuses are the statuses that hold a venue/date slot against
// later requests.
var blockingStatuses = []types.BookingStatus{
	types.BOOKING_APPROVED,
	types.BOOKING_PAYMENT_PENDING,
	types.BOOKING_COMPLETED,
}

// CreateVenueBookingRequest runs the capacity and slot-conflict checks and
// the insert inside one transaction, holding the venue row so two requests
// for the same slot serialize instead of both passing the check.
func CreateVenueBookingRequest(params *types.CreateVenueBookingRequestBody, userId uint, userRole string) (*models.BookingRequest, error) {
	eventDate, err := time.Parse(config.DATE_PARSE_FORMAT, params.EventDate)
	if err != nil {
		return nil, types.NewValidationError("eventDate must be formatted as YYYY-MM-DD")
	}
	var request models.BookingRequest
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Venue{ID: params.VenueID}).
			First(&venue).
			Error; err != nil {
			return types.NewNotFoundError("venue not found")
		}
		if params.ExpectedAttendees > venue.Capacity {
			return types.NewValidationError(fmt.Sprintf("expected attendees exceed venue capacity of %d", venue.Capacity))
		}
		var count int64
		if err := tx.
			Model(&models.BookingRequest{}).
			Where(&models.BookingRequest{VenueID: venue.ID}).
			Where("event_date = ?", eventDate).
			Where("status IN (?)", blockingStatuses).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return types.NewConflictError("venue is already booked for the requested date")
		}
		now := time.Now()
		request = models.BookingRequest{
			VenueID:           venue.ID,
			RequesterID:       userId,
			RequesterRole:     userRole,
			EventName:         params.EventName,
			EventDate:         eventDate,
			EventStartTime:    params.EventStartTime,
			EventEndTime:      params.EventEndTime,
			ExpectedAttendees: params.ExpectedAttendees,
			Purpose:           params.Purpose,
			OrganizerName:     params.OrganizerName,
			OrganizerEmail:    params.OrganizerEmail,
			Status:            types.BOOKING_PENDING,
			PaymentStatus:     types.PAYMENT_PENDING,
			StatusHistory:     common.InitialHistory(now, "request created"),
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateVenueBookingRequest failed: %s\n", err.Error())
		return nil, err
	}
	return &request, nil
}

// ApplyBookingRequestTransition moves a venue booking request through the
// lifecycle. The row is locked for the duration and the update is conditional
// on the status the transition was computed from, so at most one of two
// concurrent transitions lands.
func ApplyBookingRequestTransition(id uint, in common.TransitionInput) (*models.BookingRequest, error) {
	var request models.BookingRequest
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.BookingRequest{ID: id}).
			First(&request).
			Error; err != nil {
			return types.NewNotFoundError("booking request not found")
		}
		tr, err := common.Apply(common.LifecycleConfig{PaymentSupported: true}, request.Status, in, time.Now())
		if err != nil {
			return err
		}
		history := append(request.StatusHistory, tr.Entry)
		updates := map[string]any{
			"status":         tr.To,
			"status_history": history,
		}
		if in.Action == types.ACTION_APPROVE {
			updates["rent_amount"] = in.Amount
		}
		if in.Action == types.ACTION_REJECT {
			updates["rejection_reason"] = in.RejectionReason
		}
		if tr.PaymentStatus != nil {
			updates["payment_status"] = *tr.PaymentStatus
		}
		res := tx.
			Model(&models.BookingRequest{}).
			Where("id = ? AND status = ?", id, tr.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NewConflictError("booking request was updated concurrently")
		}
		request.Status = tr.To
		request.StatusHistory = history
		if in.Action == types.ACTION_APPROVE {
			request.RentAmount = in.Amount
		}
		if in.Action == types.ACTION_REJECT {
			request.RejectionReason = &in.RejectionReason
		}
		if tr.PaymentStatus != nil {
			request.PaymentStatus = *tr.PaymentStatus
		}
		return nil
	})
	if err != nil {
		log.Printf("ApplyBookingRequestTransition failed for [%d]: %s\n", id, err.Error())
		return nil, err
	}
	return &request, nil
}

// CreateEventBooking registers a user for an event. The event row is locked
// while seats are counted; a second registration by the same user is a
// conflict regardless of submission order.
func CreateEventBooking(eventId uint, userId uint, userRole string, attendees uint) (*models.EventBooking, error) {
	if attendees == 0 {
		attendees = 1
	}
	var booking models.EventBooking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Event{ID: eventId}).
			First(&event).
			Error; err != nil {
			return types.NewNotFoundError("event not found")
		}
		if event.Status != types.EVENT_OPEN {
			return types.NewValidationError("event is not open for registration")
		}
		if time.Now().After(event.Deadline) {
			return types.NewValidationError("registration deadline has passed")
		}
		var existing int64
		if err := tx.
			Model(&models.EventBooking{}).
			Where(&models.EventBooking{EventID: eventId, RequesterID: userId}).
			Where("status NOT IN (?)", []types.BookingStatus{types.BOOKING_REJECTED, types.BOOKING_CANCELED}).
			Count(&existing).
			Error; err != nil {
			return err
		}
		if existing > 0 {
			return types.NewConflictError("already registered for this event")
		}
		var taken struct{ Reserved uint }
		if err := tx.
			Model(&models.EventBooking{}).
			Where(&models.EventBooking{EventID: eventId}).
			Where("status IN (?)", append(blockingStatuses, types.BOOKING_PENDING)).
			Select("COALESCE(SUM(attendees), 0) as reserved").
			Scan(&taken).
			Error; err != nil {
			return err
		}
		if taken.Reserved+attendees > event.Seats {
			return types.NewValidationError("event has no seats left")
		}
		now := time.Now()
		booking = models.EventBooking{
			EventID:       eventId,
			RequesterID:   userId,
			RequesterRole: userRole,
			Attendees:     attendees,
			TotalAmount:   event.Fee * float64(attendees),
			Status:        types.BOOKING_PENDING,
			PaymentStatus: types.PAYMENT_PENDING,
			StatusHistory: common.InitialHistory(now, "registration created"),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("CreateEventBooking failed: %s\n", err.Error())
		return nil, err
	}
	return &booking, nil
}

// ApplyEventBookingTransition is the event-booking leg of the shared
// lifecycle. Approve is final here; event fees are collected at admission,
// so there is no payment_pending branch to park a registration in.
func ApplyEventBookingTransition(id uint, in common.TransitionInput) (*models.EventBooking, error) {
	var booking models.EventBooking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.EventBooking{ID: id}).
			First(&booking).
			Error; err != nil {
			return types.NewNotFoundError("event booking not found")
		}
		tr, err := common.Apply(common.LifecycleConfig{PaymentSupported: false}, booking.Status, in, time.Now())
		if err != nil {
			return err
		}
		history := append(booking.StatusHistory, tr.Entry)
		updates := map[string]any{
			"status":         tr.To,
			"status_history": history,
		}
		if in.Action == types.ACTION_REJECT {
			updates["rejection_reason"] = in.RejectionReason
		}
		if tr.PaymentStatus != nil {
			updates["payment_status"] = *tr.PaymentStatus
		}
		res := tx.
			Model(&models.EventBooking{}).
			Where("id = ? AND status = ?", id, tr.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NewConflictError("event booking was updated concurrently")
		}
		booking.Status = tr.To
		booking.StatusHistory = history
		if tr.PaymentStatus != nil {
			booking.PaymentStatus = *tr.PaymentStatus
		}
		return nil
	})
	if err != nil {
		log.Printf("ApplyEventBookingTransition failed for [%d]: %s\n", id, err.Error())
		return nil, err
	}
	return &booking, nil
}

// ExportBookingQR renders a confirmation code for a finalized request the
// way tickets are exported: a QR image written under TEMP_DIR.
func ExportBookingQR(request *models.BookingRequest) (string, error) {
	if request.Status != types.BOOKING_APPROVED && request.Status != types.BOOKING_COMPLETED {
		return "", types.NewValidationError("booking is not confirmed")
	}
	rawData := map[string]any{
		"bookingRequestId": request.ID,
		"venueId":          request.VenueID,
		"eventDate":        request.EventDate.Format(config.DATE_PARSE_FORMAT),
		"status":           request.Status,
	}
	rawBytes, _ := json.Marshal(rawData)
	qrc, err := qrcode.New(string(rawBytes))
	if err != nil {
		return "", err
	}
	tempdir := os.Getenv("TEMP_DIR")
	filepath := path.Join(tempdir, fmt.Sprintf("booking_%d.jpeg", request.ID))
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", err
	}
	return filepath, nil
}

// NotifyBookingDecision emails the organizer contact after an admin decision
// or a completed payment. Failures are logged, never surfaced to the caller.
func NotifyBookingDecision(request *models.BookingRequest) {
	subject := fmt.Sprintf("Venue booking request #%d: %s", request.ID, request.Status)
	body := fmt.Sprintf("Your booking request for %s on %s is now %s.",
		request.EventName,
		request.EventDate.Format(config.DATE_PARSE_FORMAT),
		request.Status,
	)
	if request.Status == types.BOOKING_REJECTED && request.RejectionReason != nil {
		body = fmt.Sprintf("%s Reason: %s", body, *request.RejectionReason)
	}
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: "ACE Campus",
		To:       []string{request.OrganizerEmail},
		Subject:  subject,
		Body:     body,
	})
	if err != nil {
		log.Printf("Could not send decision mail for request [%d]: %s\n", request.ID, err.Error())
	}
}

// ExpireStalePaymentRequests cancels payment_pending requests whose event
// date has already passed. Runs from the scheduler.
func ExpireStalePaymentRequests() {
	db := db.GetDb()
	var ids []uint
	err := db.
		Model(&models.BookingRequest{}).
		Where(&models.BookingRequest{Status: types.BOOKING_PAYMENT_PENDING}).
		Where("event_date < ?", time.Now()).
		Pluck("id", &ids).
		Error
	if err != nil {
		log.Printf("Error while looking up stale requests: %s\n", err.Error())
		return
	}
	for _, id := range ids {
		if _, err := ApplyBookingRequestTransition(id, common.TransitionInput{
			Action: types.ACTION_CANCEL,
			Note:   "payment window expired",
		}); err != nil {
			log.Printf("Could not expire request [%d]: %s\n", id, err.Error())
		}
	}
	if len(ids) > 0 {
		log.Printf("Expired %d stale payment_pending requests\n", len(ids))
	}
}

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}
