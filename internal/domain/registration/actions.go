package registration

import (
	"fmt"
	"strings"

	"github.com/fitlane/trainer-scheduler/internal/domain/bookingerr"
	"github.com/fitlane/trainer-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Every mutation of a ServiceRegistration goes through one of these
// functions. A failed action leaves the record untouched.

func transitionErr(from, to Status) error {
	return bookingerr.InvalidTransition(
		"invalid_transition",
		fmt.Sprintf("registration cannot move from %s to %s", from, to),
	)
}

func guard(r *models.ServiceRegistration, to Status) error {
	from := Status(r.Status)
	if !CanTransition(from, to) {
		return transitionErr(from, to)
	}
	return nil
}

func Approve(r *models.ServiceRegistration) error {
	if err := guard(r, StatusApproved); err != nil {
		return err
	}

	r.Status = string(StatusApproved)
	return nil
}

func Reject(r *models.ServiceRegistration, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return bookingerr.Validation("missing_rejection_reason", "a rejection reason is required")
	}
	if err := guard(r, StatusRejected); err != nil {
		return err
	}

	r.Status = string(StatusRejected)
	r.RejectionReason = reason
	return nil
}

func Cancel(r *models.ServiceRegistration) error {
	if err := guard(r, StatusCanceled); err != nil {
		return err
	}

	r.Status = string(StatusCanceled)
	return nil
}

// Complete marks the registration fully delivered: completed sessions are
// forced to the total and the status becomes terminal in one step.
func Complete(r *models.ServiceRegistration) error {
	if err := guard(r, StatusCompleted); err != nil {
		return err
	}

	r.CompletedSessions = r.NumberOfSessions
	r.Status = string(StatusCompleted)
	return nil
}

// RecordProgress updates the session counter without changing status.
// Legal only while approved; the counter never exceeds the total.
func RecordProgress(r *models.ServiceRegistration, completed int) error {
	if Status(r.Status) != StatusApproved {
		return bookingerr.InvalidTransition(
			"invalid_transition",
			fmt.Sprintf("progress can only be recorded on an approved registration, current status is %s", r.Status),
		)
	}

	if completed < 0 || completed > r.NumberOfSessions {
		return bookingerr.Validation(
			"sessions_out_of_range",
			fmt.Sprintf("completed sessions must be between 0 and %d", r.NumberOfSessions),
		)
	}

	r.CompletedSessions = completed
	return nil
}
