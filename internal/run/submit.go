package run

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Receipt statuses.
const (
	StatusSubmitted = "submitted"
	StatusScheduled = "scheduled"
)

// Submission is a finalised configuration ready for the integration job.
type Submission struct {
	ID           uuid.UUID       `json:"id"`
	SessionID    uuid.UUID       `json:"sessionId"`
	Config       Config          `json:"run"`
	ScheduledFor time.Time       `json:"scheduledFor,omitzero"` // zero: run now
	Payload      json.RawMessage `json:"payload"`               // opaque wizard data
	CreatedAt    time.Time       `json:"createdAt"`
}

// Receipt acknowledges a submission.
type Receipt struct {
	ID           uuid.UUID  `json:"id"`
	Status       string     `json:"status"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	Message      string     `json:"message"`
}

// Submitter records submissions.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) (Receipt, error)
}

// Planner builds submissions in a fixed timezone.
type Planner struct {
	Location   *time.Location
	AfterHours string // HH:MM
	Now        func() time.Time
}

// Plan resolves cfg and wraps payload into a Submission.
func (p Planner) Plan(sessionID uuid.UUID, cfg Config, payload any) (Submission, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	t := now()

	at, err := Resolve(cfg, t, p.Location, p.AfterHours)
	if err != nil {
		return Submission{}, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Submission{}, fmt.Errorf("encode payload: %w", err)
	}
	return Submission{
		ID:           uuid.New(),
		SessionID:    sessionID,
		Config:       cfg,
		ScheduledFor: at,
		Payload:      raw,
		CreatedAt:    t,
	}, nil
}

// ReceiptFor describes the outcome of recording sub.
func ReceiptFor(sub Submission) Receipt {
	if sub.ScheduledFor.IsZero() {
		return Receipt{
			ID:      sub.ID,
			Status:  StatusSubmitted,
			Message: "Integration job submitted successfully",
		}
	}
	at := sub.ScheduledFor
	return Receipt{
		ID:           sub.ID,
		Status:       StatusScheduled,
		ScheduledFor: &at,
		Message:      "Integration scheduled for " + at.Format("Jan 2, 2006 at 3:04 PM MST"),
	}
}

// LogSubmitter only logs submissions. Used when no database is configured.
type LogSubmitter struct{}

func (LogSubmitter) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	r := ReceiptFor(sub)
	slog.InfoContext(ctx, "integration submission recorded",
		"submission_id", sub.ID,
		"session_id", sub.SessionID,
		"status", r.Status,
		"scheduled_for", sub.ScheduledFor,
		"payload_bytes", len(sub.Payload),
	)
	return r, nil
}
