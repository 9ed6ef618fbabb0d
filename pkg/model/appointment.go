package model

import (
	"time"
)

// Appointment occupies a half-open window [start_time, end_time) on one
// veterinarian's schedule. Active appointments (pending or confirmed) may not
// overlap for the same veterinarian.
type Appointment struct {
	ID       string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VetID    string `json:"vet_id" bson:"vet_id" validate:"required,mongodb"`
	ClientID string `json:"client_id" bson:"client_id" validate:"required,mongodb"`
	PetID    string `json:"pet_id" bson:"pet_id" validate:"required,mongodb"`

	StartTime time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Status    string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled no_show"`

	Reason   string `json:"reason" bson:"reason" validate:"required,min=2,max=2000"`
	Symptoms string `json:"symptoms,omitempty" bson:"symptoms" validate:"omitempty,max=2000"`

	MeetingLink     string `json:"meeting_link,omitempty" bson:"meeting_link"`
	MeetingID       string `json:"meeting_id,omitempty" bson:"meeting_id"`
	MeetingPassword string `json:"meeting_password,omitempty" bson:"meeting_password"`

	Notes            string     `json:"notes,omitempty" bson:"notes" validate:"omitempty,max=5000"`
	Prescription     string     `json:"prescription,omitempty" bson:"prescription" validate:"omitempty,max=5000"`
	FollowUpRequired bool       `json:"follow_up_required" bson:"follow_up_required"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty" bson:"follow_up_date,omitempty"`

	CancelledBy        string     `json:"cancelled_by,omitempty" bson:"cancelled_by"`
	CancellationReason string     `json:"cancellation_reason,omitempty" bson:"cancellation_reason" validate:"omitempty,oneof=client_request vet_unavailable emergency rescheduled other"`
	CancellationNote   string     `json:"cancellation_note,omitempty" bson:"cancellation_note" validate:"omitempty,max=2000"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

type AppointmentUpdate struct {
	StartTime        *time.Time `json:"start_time,omitempty" validate:"omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty" validate:"omitempty"`
	Reason           string     `json:"reason,omitempty" validate:"omitempty,min=2,max=2000"`
	Symptoms         *string    `json:"symptoms,omitempty" validate:"omitempty,max=2000"`
	Notes            *string    `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Prescription     *string    `json:"prescription,omitempty" validate:"omitempty,max=5000"`
	FollowUpRequired *bool      `json:"follow_up_required,omitempty"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty"`
}

// RescheduleRequest moves an appointment to a new window. The new window goes
// through the same schedule validation and conflict check as a fresh request.
type RescheduleRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// CompletionRequest carries the consultation outcome recorded on completion.
type CompletionRequest struct {
	Notes            string     `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Prescription     string     `json:"prescription,omitempty" validate:"omitempty,max=5000"`
	FollowUpRequired bool       `json:"follow_up_required"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty"`
}

// CancelRequest carries the fields recorded when either party cancels.
type CancelRequest struct {
	CancelledBy string `json:"cancelled_by" validate:"required,mongodb"`
	Reason      string `json:"reason" validate:"required,oneof=client_request vet_unavailable emergency rescheduled other"`
	Note        string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// IsUpcoming reports whether the appointment still occupies a future window.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	return a.StartTime.After(now) && (a.Status == "pending" || a.Status == "confirmed")
}

// IsPast reports whether the appointment window has already started.
func (a *Appointment) IsPast(now time.Time) bool {
	return a.StartTime.Before(now)
}

// Overlaps reports whether two half-open windows [s1,e1) and [s2,e2) intersect.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}
