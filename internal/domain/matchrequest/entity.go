package matchrequest

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

const MaxMessageLength = 1000

// MatchRequest is a mentee-initiated proposal to a mentor. Rows are
// never deleted; cancellation is a terminal status.
type MatchRequest struct {
	ID        int64
	MentorID  int64
	MenteeID  int64
	Message   string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
