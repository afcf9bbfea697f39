// internal/models/waitlist.go
package models

import (
	"time"
)

type WaitlistEntry struct {
	ID       string    `json:"id" bson:"_id"`
	Name     string    `json:"name" bson:"name"`
	Email    string    `json:"email" bson:"email"`
	Phone    string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Location string    `json:"location,omitempty" bson:"location,omitempty"`
	Role     Role      `json:"role" bson:"role"`
	JoinedAt time.Time `json:"joinedAt" bson:"joinedAt"`
}
