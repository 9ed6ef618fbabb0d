package model

import "time"

// Schedule is a veterinarian's recurring weekly availability. A window is
// bookable when it lies inside [start_of_day, end_of_day) on a working day
// that is not listed as an exception date.
type Schedule struct {
	ID              string           `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VetID           string           `json:"vet_id" bson:"vet_id" validate:"required,mongodb"`
	StartOfDay      string           `json:"start_of_day" bson:"start_of_day" validate:"required,valid_time_of_day"`
	EndOfDay        string           `json:"end_of_day" bson:"end_of_day" validate:"required,valid_time_of_day"`
	WorkingDays     []Weekday `json:"working_days" bson:"working_days" validate:"required,min=1,max=7,dive,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	SlotDurationMin int              `json:"slot_duration_min" bson:"slot_duration_min" validate:"required,min=5,max=480"`
	Exceptions      []string         `json:"exceptions,omitempty" bson:"exceptions" validate:"omitempty,dive,datetime=2006-01-02"`
	TimeZone        string           `json:"time_zone,omitempty" bson:"time_zone" validate:"omitempty,timezone"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type ScheduleUpdate struct {
	StartOfDay      string           `json:"start_of_day,omitempty" validate:"omitempty,valid_time_of_day"`
	EndOfDay        string           `json:"end_of_day,omitempty" validate:"omitempty,valid_time_of_day"`
	WorkingDays     []Weekday `json:"working_days,omitempty" validate:"omitempty,min=1,max=7,dive,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	SlotDurationMin *int             `json:"slot_duration_min,omitempty" validate:"omitempty,min=5,max=480"`
	Exceptions      *[]string        `json:"exceptions,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
	TimeZone        string           `json:"time_zone,omitempty" validate:"omitempty,timezone"`
}

// Slot is a bookable window on a specific day, computed from a schedule
// minus the appointments already occupying it.
type Slot struct {
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
}

// Location resolves the schedule's timezone, falling back to UTC.
func (s *Schedule) Location() *time.Location {
	if s.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
