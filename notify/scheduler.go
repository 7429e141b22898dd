package notify

import (
	"context"
	"time"
)

// The two fixed alert identifiers. Rescheduling an identifier replaces any
// pending alert under it.
const (
	EndNotificationID      = "workEndNotification"
	OvertimeNotificationID = "workOverdueNotification"
)

type Notification struct {
	ID     string
	Title  string
	Body   string
	FireAt time.Time
}

// Scheduler is the one-shot local alert capability. Scheduling is
// fire-and-forget: a failure is reported to the caller for logging but must
// never block or revert the state transition that triggered it.
type Scheduler interface {
	Schedule(n Notification) error
	Cancel(ids ...string)
	PermissionGranted() bool
	RequestPermission(ctx context.Context) (bool, error)
}
