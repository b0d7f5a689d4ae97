package repository

import (
	"context"
	"database/sql"
	"fmt"

	"wisefido-monitor/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlarmAuditRepository append-only audit trail of alarm lifecycle events.
// Rows are never read back into the simulation.
type AlarmAuditRepository struct {
	db     *sql.DB
	runID  string
	logger *zap.Logger
}

// NewAlarmAuditRepository creates the repository; runID tags every row of this process
func NewAlarmAuditRepository(db *sql.DB, runID string, logger *zap.Logger) *AlarmAuditRepository {
	return &AlarmAuditRepository{
		db:     db,
		runID:  runID,
		logger: logger,
	}
}

const createAlarmAuditTable = `
	CREATE TABLE IF NOT EXISTS alarm_audit (
		audit_id    UUID PRIMARY KEY,
		run_id      UUID NOT NULL,
		event       VARCHAR(32) NOT NULL,
		alarm_id    TEXT NOT NULL,
		patient_id  INTEGER NOT NULL,
		room        VARCHAR(32),
		vital       VARCHAR(32) NOT NULL,
		severity    VARCHAR(16) NOT NULL,
		message     TEXT NOT NULL,
		raised_at   TIMESTAMPTZ NOT NULL,
		occurred_at TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// EnsureSchema creates the audit table when missing
func (r *AlarmAuditRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAlarmAuditTable); err != nil {
		return fmt.Errorf("failed to create alarm_audit table: %w", err)
	}
	return nil
}

// Record inserts one audit row and returns its id
func (r *AlarmAuditRepository) Record(ctx context.Context, event models.AlarmEvent) (string, error) {
	if event.Alarm.ID == "" {
		return "", fmt.Errorf("alarm_id is required")
	}

	auditID := uuid.New().String()
	query := `
		INSERT INTO alarm_audit (
			audit_id,
			run_id,
			event,
			alarm_id,
			patient_id,
			room,
			vital,
			severity,
			message,
			raised_at,
			occurred_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		auditID,
		r.runID,
		string(event.Kind),
		event.Alarm.ID,
		event.Alarm.PatientID,
		event.Alarm.Room,
		string(event.Alarm.Vital),
		string(event.Alarm.Severity),
		event.Alarm.Message,
		event.Alarm.Timestamp,
		event.At,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert alarm audit: %w", err)
	}

	r.logger.Debug("Alarm audit recorded",
		zap.String("audit_id", auditID),
		zap.String("alarm_id", event.Alarm.ID),
		zap.String("event", string(event.Kind)),
	)
	return auditID, nil
}

// OnAlarm audit sink entry point
func (r *AlarmAuditRepository) OnAlarm(ctx context.Context, event models.AlarmEvent) error {
	_, err := r.Record(ctx, event)
	return err
}
