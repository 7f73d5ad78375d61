// internal/domain/notification/record.go
package notification

import (
	"database/sql"
	"time"
)

// Kind tells status-change messages apart from failure reports.
type Kind string

const (
	KindStatus  Kind = "STATUS"
	KindFailure Kind = "FAILURE"
)

// Record is one attempt to deliver a message to the chat.
// Corresponds to the 'sent_notifications' table.
type Record struct {
	ID            int64
	CycleID       string // Correlates with the cycle_id log field
	Kind          Kind
	Text          string
	Delivered     bool
	DeliveryError sql.NullString // Set when Delivered is false
	CreatedAt     time.Time
}
