package model

import "time"

type Pet struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID         string    `json:"owner_id" bson:"owner_id" validate:"required,mongodb"`
	Name            string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Species         string    `json:"species" bson:"species" validate:"required,oneof=dog cat bird rabbit hamster fish reptile other"`
	Breed           string    `json:"breed,omitempty" bson:"breed" validate:"omitempty,max=100"`
	DateOfBirth     time.Time `json:"date_of_birth" bson:"date_of_birth" validate:"required"`
	Gender          string    `json:"gender" bson:"gender" validate:"required,oneof=male female unknown"`
	WeightKG        float64   `json:"weight_kg" bson:"weight_kg" validate:"required,gt=0,lte=500"`
	Color           string    `json:"color,omitempty" bson:"color" validate:"omitempty,max=50"`
	MicrochipNumber string    `json:"microchip_number,omitempty" bson:"microchip_number" validate:"omitempty,max=50"`
	Allergies       string    `json:"allergies,omitempty" bson:"allergies" validate:"omitempty,max=2000"`
	MedicalNotes    string    `json:"medical_notes,omitempty" bson:"medical_notes" validate:"omitempty,max=5000"`
	Active          bool      `json:"active" bson:"active"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PetUpdate struct {
	Name            string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Breed           string   `json:"breed,omitempty" validate:"omitempty,max=100"`
	WeightKG        *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0,lte=500"`
	Color           string   `json:"color,omitempty" validate:"omitempty,max=50"`
	MicrochipNumber string   `json:"microchip_number,omitempty" validate:"omitempty,max=50"`
	Allergies       *string  `json:"allergies,omitempty" validate:"omitempty,max=2000"`
	MedicalNotes    *string  `json:"medical_notes,omitempty" validate:"omitempty,max=5000"`
	Active          *bool    `json:"active,omitempty"`
}
