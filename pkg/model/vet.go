package model

import "time"

type Vet struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FullName        string    `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	Phone           string    `json:"phone" bson:"phone" validate:"required,e164"`
	City            string    `json:"city" bson:"city" validate:"required,min=2,max=50"`
	Specializations []string  `json:"specializations" bson:"specializations" validate:"required,min=1,max=10,dive,required"`
	LicenseNumber   string    `json:"license_number" bson:"license_number" validate:"required,min=2,max=50"`
	FeeCents        int64     `json:"fee_cents" bson:"fee_cents" validate:"omitempty,min=0"`
	YearsExperience int       `json:"years_experience" bson:"years_experience" validate:"omitempty,min=0,max=80"`
	Bio             string    `json:"bio,omitempty" bson:"bio" validate:"omitempty,max=2000"`
	TimeZone        string    `json:"time_zone,omitempty" bson:"time_zone" validate:"omitempty,timezone"`
	Active          bool      `json:"active" bson:"active"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type VetUpdate struct {
	FullName        string   `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string   `json:"phone,omitempty" validate:"omitempty,e164"`
	City            string   `json:"city,omitempty" validate:"omitempty,min=2,max=50"`
	Specializations []string `json:"specializations,omitempty" validate:"omitempty,min=1,max=10,dive,required"`
	LicenseNumber   string   `json:"license_number,omitempty" validate:"omitempty,min=2,max=50"`
	FeeCents        *int64   `json:"fee_cents,omitempty" validate:"omitempty,min=0"`
	YearsExperience *int     `json:"years_experience,omitempty" validate:"omitempty,min=0,max=80"`
	Bio             *string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	TimeZone        string   `json:"time_zone,omitempty" validate:"omitempty,timezone"`
	Active          *bool    `json:"active,omitempty"`
}
