package common

import (
	"acecampus/src/types"
	"fmt"
	"strings"
	"time"
)

// The one lifecycle shared by venue booking requests and event bookings.
// Venue requests may take the payment leg; event bookings only do when the
// event carries a fee.

// LifecycleConfig differentiates the resource types that share the lifecycle.
type LifecycleConfig struct {
	// PaymentSupported routes approve with a positive charge through
	// payment_pending instead of landing on approved directly.
	PaymentSupported bool
}

type TransitionInput struct {
	Action          types.BookingAction
	RejectionReason string
	Amount          float64
	Note            string
}

// Transition is the computed outcome of applying an action: the status move,
// the lockstep payment status (when any), and the history entry to append.
type Transition struct {
	From          types.BookingStatus
	To            types.BookingStatus
	PaymentStatus *types.PaymentStatus
	Entry         types.StatusEntry
	AwaitsPayment bool
}

// allowedTransitions keys the current status to its valid targets.
// rejected, cancelled and completed are terminal.
var allowedTransitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_PENDING: {
		types.BOOKING_APPROVED,
		types.BOOKING_PAYMENT_PENDING,
		types.BOOKING_REJECTED,
		types.BOOKING_CANCELED,
	},
	types.BOOKING_APPROVED: {
		types.BOOKING_CANCELED,
	},
	types.BOOKING_PAYMENT_PENDING: {
		types.BOOKING_COMPLETED,
		types.BOOKING_CANCELED,
	},
	types.BOOKING_COMPLETED: {},
	types.BOOKING_REJECTED:  {},
	types.BOOKING_CANCELED:  {},
}

func Terminal(s types.BookingStatus) bool {
	targets, ok := allowedTransitions[s]
	return ok && len(targets) == 0
}

func CanTransition(from, to types.BookingStatus) bool {
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}

// Apply computes the next status for an action without touching storage. The
// caller persists the move with a conditional update on From so a concurrent
// transition loses cleanly.
func Apply(cfg LifecycleConfig, current types.BookingStatus, in TransitionInput, now time.Time) (*Transition, error) {
	tr := &Transition{From: current}
	note := in.Note

	switch in.Action {
	case types.ACTION_APPROVE:
		if current != types.BOOKING_PENDING {
			return nil, types.NewConflictError(fmt.Sprintf("cannot approve a request in %s state", current))
		}
		tr.To = types.BOOKING_APPROVED
		if cfg.PaymentSupported && in.Amount > 0 {
			tr.To = types.BOOKING_PAYMENT_PENDING
			tr.AwaitsPayment = true
			if note == "" {
				note = fmt.Sprintf("approved, payment of %.2f due", in.Amount)
			}
		}
	case types.ACTION_REJECT:
		if current != types.BOOKING_PENDING {
			return nil, types.NewConflictError(fmt.Sprintf("cannot reject a request in %s state", current))
		}
		if strings.TrimSpace(in.RejectionReason) == "" {
			return nil, types.NewValidationError("Rejection reason is required")
		}
		tr.To = types.BOOKING_REJECTED
		if note == "" {
			note = in.RejectionReason
		}
	case types.ACTION_CANCEL:
		if Terminal(current) {
			return nil, types.NewConflictError(fmt.Sprintf("cannot cancel a request in %s state", current))
		}
		tr.To = types.BOOKING_CANCELED
	case types.ACTION_MARK_PAID:
		if current != types.BOOKING_PAYMENT_PENDING {
			return nil, types.NewConflictError(fmt.Sprintf("cannot record payment for a request in %s state", current))
		}
		tr.To = types.BOOKING_COMPLETED
		paid := types.PAYMENT_PAID
		tr.PaymentStatus = &paid
	default:
		return nil, types.NewValidationError(fmt.Sprintf("unknown action %q", in.Action))
	}

	if !CanTransition(current, tr.To) {
		return nil, types.NewConflictError(fmt.Sprintf("transition %s -> %s is not allowed", current, tr.To))
	}
	tr.Entry = types.StatusEntry{
		Status:    string(tr.To),
		Timestamp: now,
		Note:      note,
	}
	return tr, nil
}

// InitialHistory seeds the audit trail of a freshly created request.
func InitialHistory(now time.Time, note string) types.StatusHistory {
	return types.StatusHistory{{
		Status:    string(types.BOOKING_PENDING),
		Timestamp: now,
		Note:      note,
	}}
}
