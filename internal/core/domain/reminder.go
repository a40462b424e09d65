package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReminder is issued by the daily scan for active bookings that still
// owe money. At most one reminder exists per booking per calendar day.
type PaymentReminder struct {
	ReminderID string          `json:"reminderID"`
	ProjectID  string          `json:"projectID"`
	BookingID  string          `json:"bookingID"`
	DueDate    time.Time       `json:"dueDate"`
	Remaining  decimal.Decimal `json:"remaining"`
	CreatedAt  time.Time       `json:"createdAt"`
}
