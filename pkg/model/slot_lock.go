package model

import "time"

// SlotLock is an advisory lock serializing booking decisions for one
// veterinarian. Insertion with a duplicate _id fails, which is how a
// concurrent booking request for the vet loses the race.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
