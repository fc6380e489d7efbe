package run

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
)

// execer is the part of *pgxpool.Pool the ledger needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const createSubmissionsTable = `
CREATE TABLE IF NOT EXISTS wizard_submissions (
    id            UUID PRIMARY KEY,
    session_id    UUID NOT NULL,
    mode          TEXT NOT NULL,
    schedule_type TEXT NOT NULL,
    scheduled_for TIMESTAMPTZ,
    payload       JSONB NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertSubmission = `
INSERT INTO wizard_submissions (id, session_id, mode, schedule_type, scheduled_for, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// PgSubmitter records submissions in the wizard_submissions table.
type PgSubmitter struct {
	db execer
}

// NewPgSubmitter wraps a pool (or any Exec-capable handle).
func NewPgSubmitter(db execer) *PgSubmitter {
	return &PgSubmitter{db: db}
}

// EnsureSchema creates the ledger table if needed.
func (p *PgSubmitter) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createSubmissionsTable); err != nil {
		return fmt.Errorf("create wizard_submissions: %w", err)
	}
	return nil
}

// Submit inserts one ledger row.
func (p *PgSubmitter) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	var scheduled any
	if !sub.ScheduledFor.IsZero() {
		scheduled = sub.ScheduledFor
	}

	_, err := p.db.Exec(ctx, insertSubmission,
		sub.ID,
		sub.SessionID,
		string(sub.Config.Mode),
		string(sub.Config.ScheduleType),
		scheduled,
		[]byte(sub.Payload),
		sub.CreatedAt,
	)
	if err != nil {
		return Receipt{}, fmt.Errorf("insert submission %s: %w", sub.ID, err)
	}

	r := ReceiptFor(sub)
	slog.InfoContext(ctx, "integration submission stored",
		"submission_id", sub.ID,
		"session_id", sub.SessionID,
		"status", r.Status,
	)
	return r, nil
}
