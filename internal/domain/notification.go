package domain

import "time"

// Queue message types carried on notification_queue.
const (
	NotifyAssignmentCreated   = "assignment_created"
	NotifyReplacementAssigned = "replacement_assigned"
	NotifyAccountCreated      = "account_created"
	NotifyResetPassword       = "reset_password"
)

// NotificationMessage is the envelope published to RabbitMQ. UserID is the
// in-app recipient (0 means email only), To the email recipient (empty
// means in-app only).
type NotificationMessage struct {
	Type   string `json:"type"`
	UserID int64  `json:"userID"`
	To     string `json:"to"`
	Data   any    `json:"data"`
}

type AssignmentCreatedData struct {
	FullName  string `json:"fullName"`
	ShiftName string `json:"shiftName"`
	Date      string `json:"date"`
}

type ReplacementAssignedData struct {
	FullName     string `json:"fullName"`
	ReplacedName string `json:"replacedName"`
	ShiftName    string `json:"shiftName"`
	Date         string `json:"date"`
}

type AccountCreatedData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"` // minutes
}

// Notification is the persisted in-app notification row written by the
// notifier worker.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userID"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
