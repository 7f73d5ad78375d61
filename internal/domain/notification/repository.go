// internal/domain/notification/repository.go
package notification

import "context"

// Repository stores the history of delivery attempts. It is write-only:
// nothing is read back on startup.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
}
