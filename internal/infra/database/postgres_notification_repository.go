// internal/infra/database/postgres_notification_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/notification"

	"github.com/lib/pq"
)

var ErrJournalTableMissing = fmt.Errorf("sent_notifications table does not exist")

// undefined_table, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgUndefinedTable pq.ErrorCode = "42P01"

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Save(ctx context.Context, rec *notification.Record) error {
	query := `INSERT INTO sent_notifications (cycle_id, kind, text, delivered, delivery_error)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, rec.CycleID, rec.Kind, rec.Text, rec.Delivered, rec.DeliveryError).
		Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUndefinedTable {
			return ErrJournalTableMissing
		}
		return fmt.Errorf("error saving sent notification: %w", err)
	}
	return nil
}
