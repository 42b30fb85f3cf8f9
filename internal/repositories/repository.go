package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository groups the per-table repositories behind one handle.
type Repository interface {
	StudyLog() StudyLogRepository
	MockAttempt() MockAttemptRepository
	Profile() ProfileRepository
	Snapshot() SnapshotRepository

	// WithTransaction runs fn inside a database transaction. fn receives a
	// Repository bound to the transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// IsNotFoundError reports whether err means the row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
