package leaveRepo

import (
	"context"
	"time"
)

// LeaveRepository answers whether a user is out of office on a calendar date
// (approved leave or holiday).
type LeaveRepository interface {
	IsOnLeave(ctx context.Context, user string, date time.Time) (bool, error)
}
