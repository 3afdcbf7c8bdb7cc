package models

import (
	"fmt"
	"time"

	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

// EnrollmentStatus represents the lifecycle of an enrollment
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "PENDING"
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentWaitlist  EnrollmentStatus = "WAITLIST"
	EnrollmentCancelled EnrollmentStatus = "CANCELLED"
)

// EnrollmentAction is an explicit act applied to an enrollment
type EnrollmentAction string

const (
	ActionApprove EnrollmentAction = "approve" // tutor accepts a pending request
	ActionReject  EnrollmentAction = "reject"  // tutor declines a pending request
	ActionCancel  EnrollmentAction = "cancel"  // learner withdraws, any non-terminal state
	ActionPromote EnrollmentAction = "promote" // waitlisted enrollment takes a freed seat
)

// Enrollment relates one learner to one course offering. CANCELLED is
// terminal: a later re-registration inserts a fresh row rather than reopening
// this one.
type Enrollment struct {
	ID             int64            `json:"id" db:"id" example:"1"`
	OfferingID     int64            `json:"offeringId" db:"offering_id" example:"1"`
	LearnerID      int64            `json:"learnerId" db:"learner_id" example:"3"`
	Status         EnrollmentStatus `json:"status" db:"status" example:"ACTIVE"`
	RequestedAt    time.Time        `json:"requestedAt" db:"requested_at"`
	TransitionedAt time.Time        `json:"transitionedAt" db:"transitioned_at"`

	// WaitlistPosition is the 1-based FIFO position, only meaningful while
	// status is WAITLIST. Derived from requested_at, never stored.
	WaitlistPosition *int `json:"waitlistPosition,omitempty"`

	// Relations (populated when needed)
	Learner *User `json:"learner,omitempty"`
}

// DecideInitialStatus is the capacity gate: it decides the state a brand new
// registration request starts in. Order matters: approval-required offerings
// always start PENDING regardless of capacity, because capacity is evaluated
// at approval time, not at request time.
func DecideInitialStatus(approvalRequired bool, capacity, activeCount int) EnrollmentStatus {
	if approvalRequired {
		return EnrollmentPending
	}
	if activeCount < capacity {
		return EnrollmentActive
	}
	return EnrollmentWaitlist
}

// NextStatus applies one action to the enrollment state machine and returns
// the resulting state. seatAvailable must reflect the offering's capacity at
// the moment of the action, read under the same transaction that commits the
// result:
//
//	PENDING  --approve-->  ACTIVE (seat available) / WAITLIST (full)
//	PENDING  --reject-->   CANCELLED
//	PENDING  --cancel-->   CANCELLED
//	ACTIVE   --cancel-->   CANCELLED
//	WAITLIST --cancel-->   CANCELLED
//	WAITLIST --promote-->  ACTIVE (requires a free seat)
//
// Everything else is rejected with no state change.
func NextStatus(current EnrollmentStatus, action EnrollmentAction, seatAvailable bool) (EnrollmentStatus, error) {
	switch action {
	case ActionApprove:
		if current != EnrollmentPending {
			return current, invalidTransition(current, action)
		}
		if seatAvailable {
			return EnrollmentActive, nil
		}
		return EnrollmentWaitlist, nil

	case ActionReject:
		if current != EnrollmentPending {
			return current, invalidTransition(current, action)
		}
		return EnrollmentCancelled, nil

	case ActionCancel:
		if current == EnrollmentCancelled {
			return current, invalidTransition(current, action)
		}
		return EnrollmentCancelled, nil

	case ActionPromote:
		if current != EnrollmentWaitlist {
			return current, invalidTransition(current, action)
		}
		if !seatAvailable {
			return current, apperrors.NewCustomError(apperrors.ErrNoSeatAvailable,
				"cannot promote: offering is at capacity")
		}
		return EnrollmentActive, nil

	default:
		return current, apperrors.NewValidationError(fmt.Sprintf("unknown enrollment action %q", action))
	}
}

func invalidTransition(current EnrollmentStatus, action EnrollmentAction) error {
	return apperrors.NewInvalidTransitionError(fmt.Sprintf("cannot %s an enrollment in state %s", action, current))
}
