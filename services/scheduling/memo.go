package scheduling

import (
	"context"
	"time"

	leaveRepo "slotwise/database/repository/leave"
	"slotwise/models"
	"slotwise/utils"
)

type leaveKey struct {
	user string
	date time.Time
}

// LeaveMemo caches out-of-office lookups for the span of one request. The
// same (user, date) pair is queried several times while a listing fans out
// over adjacent days and again during booking revalidation; the memo keeps
// that at one repository hit each. It is not safe for concurrent use and must
// not outlive the request.
type LeaveMemo struct {
	leaves leaveRepo.LeaveRepository
	seen   map[leaveKey]bool
}

func NewLeaveMemo(leaves leaveRepo.LeaveRepository) *LeaveMemo {
	return &LeaveMemo{leaves: leaves, seen: make(map[leaveKey]bool)}
}

// IsOnLeave reports whether the user is out of office on the UTC date.
func (m *LeaveMemo) IsOnLeave(ctx context.Context, user string, date time.Time) (bool, error) {
	if m.leaves == nil {
		return false, nil
	}
	key := leaveKey{user: user, date: utils.UTCDate(date)}
	if v, ok := m.seen[key]; ok {
		return v, nil
	}
	v, err := m.leaves.IsOnLeave(ctx, user, key.date)
	if err != nil {
		return false, err
	}
	m.seen[key] = v
	return v, nil
}

// AnyOnLeave reports whether any of the members is out of office on the date.
func (m *LeaveMemo) AnyOnLeave(ctx context.Context, members []models.Member, date time.Time) (bool, error) {
	for _, member := range members {
		onLeave, err := m.IsOnLeave(ctx, member.User, date)
		if err != nil {
			return false, err
		}
		if onLeave {
			return true, nil
		}
	}
	return false, nil
}
