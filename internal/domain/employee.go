package domain

import "time"

// Employee is the schedulable profile behind a user account. The engine
// only ever reads it; HR workflows own its lifecycle.
type Employee struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userID"`
	Department  string    `json:"department"`
	Position    string    `json:"position"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`

	// joined from users for list views
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}
