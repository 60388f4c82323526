package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrLockBusy = errors.New("appointment: booking lock held by another request")

// Locker serializes bookings of one staff member across API instances.
// Release is always safe to call.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func StaffLockKey(companyID, staffID uuid.UUID) string {
	return fmt.Sprintf("booking:%s:%s", companyID, staffID)
}

// NoopLocker relies on the database transaction alone.
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}
