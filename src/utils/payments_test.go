package utils

import (
	"acecampus/src/types"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_key_secret"

func TestSignPaymentIsDeterministic(t *testing.T) {
	s1 := SignPayment("order_abc123", "pay_xyz789", testSecret)
	s2 := SignPayment("order_abc123", "pay_xyz789", testSecret)
	assert.Equal(t, s1, s2)
	assert.Len(t, s1, 64)
}

func TestVerifyPaymentSignature(t *testing.T) {
	sig := SignPayment("order_abc123", "pay_xyz789", testSecret)
	assert.True(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", sig, testSecret))
}

func TestVerifyPaymentSignatureMismatch(t *testing.T) {
	sig := SignPayment("order_abc123", "pay_xyz789", testSecret)

	assert.False(t, VerifyPaymentSignature("order_other", "pay_xyz789", sig, testSecret))
	assert.False(t, VerifyPaymentSignature("order_abc123", "pay_other", sig, testSecret))
	assert.False(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", sig, "wrong_secret"))
	assert.False(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", sig[:63]+"0", testSecret))
}

func TestVerifyPaymentSignatureEmptyInputs(t *testing.T) {
	sig := SignPayment("order_abc123", "pay_xyz789", testSecret)
	assert.False(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", "", testSecret))
	assert.False(t, VerifyPaymentSignature("order_abc123", "pay_xyz789", sig, ""))
}

const paidHistory = `[` +
	`{"status":"pending","timestamp":"2026-08-28T10:00:00Z","note":"request created"},` +
	`{"status":"payment_pending","timestamp":"2026-08-28T11:00:00Z","note":"approved, payment of 1500.00 due"},` +
	`{"status":"completed","timestamp":"2026-08-28T12:00:00Z","note":"payment pay_xyz789 verified"}` +
	`]`

func TestConfirmRentPaymentIdempotent(t *testing.T) {
	mock := newTestDB(t)

	// Already-paid request: the lookup is the only statement issued, the
	// history stays at three entries and no update runs.
	rows := sqlmock.NewRows([]string{"id", "status", "payment_status", "status_history"}).
		AddRow(9, "completed", "paid", []byte(paidHistory))
	mock.ExpectQuery(`SELECT (.+) FROM "booking_requests"`).WillReturnRows(rows)

	request, err := ConfirmRentPayment(&types.VerifyRentPaymentRequestBody{
		RazorpayOrderID:   "order_abc123",
		RazorpayPaymentID: "pay_xyz789",
		RazorpaySignature: "whatever",
		BookingRequestID:  9,
	})
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_COMPLETED, request.Status)
	assert.Equal(t, types.PAYMENT_PAID, request.PaymentStatus)
	assert.Len(t, request.StatusHistory, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}
