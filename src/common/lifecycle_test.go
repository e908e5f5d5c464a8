package common

import (
	"acecampus/src/types"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paid = LifecycleConfig{PaymentSupported: true}

func TestApplyApproveWithoutCharge(t *testing.T) {
	now := time.Now()
	tr, err := Apply(paid, types.BOOKING_PENDING, TransitionInput{Action: types.ACTION_APPROVE}, now)
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED, tr.To)
	assert.False(t, tr.AwaitsPayment)
	assert.Nil(t, tr.PaymentStatus)
	assert.Equal(t, string(types.BOOKING_APPROVED), tr.Entry.Status)
	assert.Equal(t, now, tr.Entry.Timestamp)
}

func TestApplyApproveWithCharge(t *testing.T) {
	tr, err := Apply(paid, types.BOOKING_PENDING, TransitionInput{
		Action: types.ACTION_APPROVE,
		Amount: 1500,
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_PAYMENT_PENDING, tr.To)
	assert.True(t, tr.AwaitsPayment)
	assert.Contains(t, tr.Entry.Note, "1500.00")
}

func TestApplyApproveChargeIgnoredWithoutPaymentSupport(t *testing.T) {
	cfg := LifecycleConfig{PaymentSupported: false}
	tr, err := Apply(cfg, types.BOOKING_PENDING, TransitionInput{
		Action: types.ACTION_APPROVE,
		Amount: 250,
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED, tr.To)
	assert.False(t, tr.AwaitsPayment)
}

func TestApplyApproveOnlyFromPending(t *testing.T) {
	for _, from := range []types.BookingStatus{
		types.BOOKING_APPROVED,
		types.BOOKING_PAYMENT_PENDING,
		types.BOOKING_COMPLETED,
		types.BOOKING_REJECTED,
		types.BOOKING_CANCELED,
	} {
		_, err := Apply(paid, from, TransitionInput{Action: types.ACTION_APPROVE}, time.Now())
		require.Error(t, err, "approve from %s", from)
		assert.Equal(t, http.StatusConflict, types.StatusCode(err))
	}
}

func TestApplyRejectRequiresReason(t *testing.T) {
	_, err := Apply(paid, types.BOOKING_PENDING, TransitionInput{Action: types.ACTION_REJECT}, time.Now())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, types.StatusCode(err))
	assert.Equal(t, "Rejection reason is required", err.Error())

	_, err = Apply(paid, types.BOOKING_PENDING, TransitionInput{
		Action:          types.ACTION_REJECT,
		RejectionReason: "   ",
	}, time.Now())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, types.StatusCode(err))
}

func TestApplyReject(t *testing.T) {
	tr, err := Apply(paid, types.BOOKING_PENDING, TransitionInput{
		Action:          types.ACTION_REJECT,
		RejectionReason: "venue under renovation",
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_REJECTED, tr.To)
	assert.Equal(t, "venue under renovation", tr.Entry.Note)
}

func TestApplyCancel(t *testing.T) {
	for _, from := range []types.BookingStatus{
		types.BOOKING_PENDING,
		types.BOOKING_APPROVED,
		types.BOOKING_PAYMENT_PENDING,
	} {
		tr, err := Apply(paid, from, TransitionInput{Action: types.ACTION_CANCEL}, time.Now())
		require.NoError(t, err, "cancel from %s", from)
		assert.Equal(t, types.BOOKING_CANCELED, tr.To)
	}
}

func TestApplyTerminalStatesAreFrozen(t *testing.T) {
	actions := []types.BookingAction{
		types.ACTION_APPROVE,
		types.ACTION_REJECT,
		types.ACTION_CANCEL,
		types.ACTION_MARK_PAID,
	}
	for _, from := range []types.BookingStatus{
		types.BOOKING_COMPLETED,
		types.BOOKING_REJECTED,
		types.BOOKING_CANCELED,
	} {
		for _, action := range actions {
			in := TransitionInput{Action: action, RejectionReason: "reason"}
			_, err := Apply(paid, from, in, time.Now())
			require.Error(t, err, "%s from %s", action, from)
			assert.Equal(t, http.StatusConflict, types.StatusCode(err))
		}
	}
}

func TestApplyMarkPaid(t *testing.T) {
	tr, err := Apply(paid, types.BOOKING_PAYMENT_PENDING, TransitionInput{Action: types.ACTION_MARK_PAID}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, types.BOOKING_COMPLETED, tr.To)
	require.NotNil(t, tr.PaymentStatus)
	assert.Equal(t, types.PAYMENT_PAID, *tr.PaymentStatus)

	_, err = Apply(paid, types.BOOKING_PENDING, TransitionInput{Action: types.ACTION_MARK_PAID}, time.Now())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, types.StatusCode(err))
}

func TestApplyUnknownAction(t *testing.T) {
	_, err := Apply(paid, types.BOOKING_PENDING, TransitionInput{Action: "escalate"}, time.Now())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, types.StatusCode(err))
}

func TestTerminal(t *testing.T) {
	assert.False(t, Terminal(types.BOOKING_PENDING))
	assert.False(t, Terminal(types.BOOKING_APPROVED))
	assert.False(t, Terminal(types.BOOKING_PAYMENT_PENDING))
	assert.True(t, Terminal(types.BOOKING_COMPLETED))
	assert.True(t, Terminal(types.BOOKING_REJECTED))
	assert.True(t, Terminal(types.BOOKING_CANCELED))
	assert.False(t, Terminal(types.BookingStatus("unknown")))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(types.BOOKING_PENDING, types.BOOKING_APPROVED))
	assert.True(t, CanTransition(types.BOOKING_PAYMENT_PENDING, types.BOOKING_COMPLETED))
	assert.False(t, CanTransition(types.BOOKING_APPROVED, types.BOOKING_PENDING))
	assert.False(t, CanTransition(types.BOOKING_COMPLETED, types.BOOKING_CANCELED))
	assert.False(t, CanTransition(types.BookingStatus("unknown"), types.BOOKING_APPROVED))
}

func TestInitialHistory(t *testing.T) {
	now := time.Now()
	history := InitialHistory(now, "request received")
	require.Len(t, history, 1)
	assert.Equal(t, string(types.BOOKING_PENDING), history[0].Status)
	assert.Equal(t, "request received", history[0].Note)
}
