package utils

import (
	"acecampus/src/common"
	"acecampus/src/db"
	"acecampus/src/lib"
	"acecampus/src/models"
	"acecampus/src/types"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SignPayment computes hex(HMAC-SHA256(secret, orderId + "|" + paymentId)),
// the signature the gateway attaches to a completed checkout.
func SignPayment(orderId string, paymentId string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature recomputes the signature server-side and compares in
// constant time. The secret never leaves the process.
func VerifyPaymentSignature(orderId string, paymentId string, signature string, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	expected := SignPayment(orderId, paymentId, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// CreateVenueRentOrder registers a gateway order for a payment_pending venue
// request and records it locally.
func CreateVenueRentOrder(bookingRequestId uint) (*models.PaymentOrder, error) {
	db := db.GetDb()
	var request models.BookingRequest
	if err := db.
		Model(&models.BookingRequest{}).
		Where(&models.BookingRequest{ID: bookingRequestId}).
		First(&request).
		Error; err != nil {
		return nil, types.NewNotFoundError("booking request not found")
	}
	if request.Status != types.BOOKING_PAYMENT_PENDING {
		return nil, types.NewConflictError("booking request is not awaiting payment")
	}
	receipt := fmt.Sprintf("venue-rent-%d-%s", request.ID, uuid.NewString()[:8])
	order, err := lib.CreateRentOrder(request.RentAmount, "INR", receipt)
	if err != nil {
		return nil, types.NewPaymentGatewayError("payment gateway did not accept the order")
	}
	orderId, ok := order["id"].(string)
	if !ok || orderId == "" {
		return nil, types.NewPaymentGatewayError("payment gateway returned an invalid order")
	}
	po := models.PaymentOrder{
		OrderID:          orderId,
		BookingRequestID: request.ID,
		Amount:           request.RentAmount,
		Currency:         "INR",
		Receipt:          receipt,
		Status:           types.PAYMENT_PENDING,
		Metadata: types.JSONB{
			"venueId":   request.VenueID,
			"eventDate": request.EventDate,
		},
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&po).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.BookingRequest{}).
			Where(&models.BookingRequest{ID: request.ID}).
			Update("payment_order_id", orderId).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error while recording payment order: %s\n", err.Error())
		return nil, err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		if _, err := rd.SetEx(context.Background(), orderKey(orderId), request.ID, 24*time.Hour).Result(); err != nil {
			log.Printf("Error caching order [%s]: %s\n", orderId, err.Error())
		}
	}
	return &po, nil
}

// ConfirmRentPayment verifies a payment callback and promotes the request to
// completed. Re-delivery of an already verified payment is a no-op: the
// history does not grow and payment_status stays paid. A signature mismatch
// forces payment_status to failed; the request stays payment_pending and the
// client must open a fresh order.
func ConfirmRentPayment(body *types.VerifyRentPaymentRequestBody) (*models.BookingRequest, error) {
	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	db := db.GetDb()

	var request models.BookingRequest
	if err := db.
		Model(&models.BookingRequest{}).
		Where(&models.BookingRequest{ID: body.BookingRequestID}).
		First(&request).
		Error; err != nil {
		return nil, types.NewNotFoundError("booking request not found")
	}
	if request.PaymentStatus == types.PAYMENT_PAID {
		return &request, nil
	}

	var order models.PaymentOrder
	if err := db.
		Model(&models.PaymentOrder{}).
		Where(&models.PaymentOrder{OrderID: body.RazorpayOrderID}).
		First(&order).
		Error; err != nil || order.BookingRequestID != request.ID {
		return nil, types.NewPaymentVerificationError("unknown payment order for this booking")
	}

	if !VerifyPaymentSignature(body.RazorpayOrderID, body.RazorpayPaymentID, body.RazorpaySignature, secret) {
		err := db.Transaction(func(tx *gorm.DB) error {
			history := append(request.StatusHistory, types.StatusEntry{
				Status:    "payment_failed",
				Timestamp: time.Now(),
				Note:      fmt.Sprintf("signature mismatch for order %s", body.RazorpayOrderID),
			})
			if err := tx.
				Model(&models.BookingRequest{}).
				Where(&models.BookingRequest{ID: request.ID}).
				Updates(map[string]any{
					"payment_status": types.PAYMENT_FAILED,
					"status_history": history,
				}).Error; err != nil {
				return err
			}
			if err := tx.
				Model(&models.PaymentOrder{}).
				Where(&models.PaymentOrder{ID: order.ID}).
				Update("status", types.PAYMENT_FAILED).
				Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			log.Printf("Error recording failed payment for request [%d]: %s\n", request.ID, err.Error())
		}
		return nil, types.NewPaymentVerificationError("payment signature verification failed")
	}

	updated, err := ApplyBookingRequestTransition(request.ID, common.TransitionInput{
		Action: types.ACTION_MARK_PAID,
		Note:   fmt.Sprintf("payment %s verified", body.RazorpayPaymentID),
	})
	if err != nil {
		return nil, err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.BookingRequest{}).
			Where(&models.BookingRequest{ID: request.ID}).
			Update("payment_id", body.RazorpayPaymentID).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.PaymentOrder{}).
			Where(&models.PaymentOrder{ID: order.ID}).
			Update("status", types.PAYMENT_PAID).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error finalizing payment for request [%d]: %s\n", request.ID, err.Error())
	}
	if rd := lib.GetRedisClient(); rd != nil {
		if _, err := rd.SetEx(context.Background(), processedKey(body.RazorpayOrderID), body.RazorpayPaymentID, 24*time.Hour).Result(); err != nil {
			log.Printf("Error caching processed payment [%s]: %s\n", body.RazorpayOrderID, err.Error())
		}
	}
	updated.PaymentID = &body.RazorpayPaymentID
	return updated, nil
}

func orderKey(orderId string) string {
	return fmt.Sprintf("payments:order:%s", orderId)
}

func processedKey(orderId string) string {
	return fmt.Sprintf("payments:processed:%s", orderId)
}
