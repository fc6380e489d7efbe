package run

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{in: "20:00", h: 20, m: 0},
		{in: "07:45", h: 7, m: 45},
		{in: " 9:05 ", h: 9, m: 5},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.h, h)
		assert.Equal(t, tt.m, m)
	}
}

func TestResolve(t *testing.T) {
	loc := mustLoc(t)
	morning := time.Date(2025, 12, 10, 9, 30, 0, 0, loc)
	night := time.Date(2025, 12, 10, 21, 0, 0, 0, loc)

	tests := []struct {
		name    string
		cfg     Config
		now     time.Time
		want    time.Time
		wantErr error
	}{
		{
			name: "now",
			cfg:  Config{Mode: ModeNow},
			now:  morning,
		},
		{
			name: "after hours later today",
			cfg:  Config{Mode: ModeLater, ScheduleType: ScheduleAfterHours},
			now:  morning,
			want: time.Date(2025, 12, 10, 20, 0, 0, 0, loc),
		},
		{
			name: "after hours rolls to tomorrow",
			cfg:  Config{Mode: ModeLater, ScheduleType: ScheduleAfterHours},
			now:  night,
			want: time.Date(2025, 12, 11, 20, 0, 0, 0, loc),
		},
		{
			name: "custom",
			cfg:  Config{Mode: ModeLater, ScheduleType: ScheduleCustom, CustomDate: "2025-12-12", CustomTime: "06:15"},
			now:  morning,
			want: time.Date(2025, 12, 12, 6, 15, 0, 0, loc),
		},
		{
			name:    "custom missing time",
			cfg:     Config{Mode: ModeLater, ScheduleType: ScheduleCustom, CustomDate: "2025-12-12"},
			now:     morning,
			wantErr: ErrScheduleIncomplete,
		},
		{
			name:    "custom missing date",
			cfg:     Config{Mode: ModeLater, ScheduleType: ScheduleCustom, CustomTime: "06:15"},
			now:     morning,
			wantErr: ErrScheduleIncomplete,
		},
		{
			name:    "custom in the past",
			cfg:     Config{Mode: ModeLater, ScheduleType: ScheduleCustom, CustomDate: "2025-12-01", CustomTime: "06:15"},
			now:     morning,
			wantErr: ErrInvalidSchedule,
		},
		{
			name:    "custom bad date",
			cfg:     Config{Mode: ModeLater, ScheduleType: ScheduleCustom, CustomDate: "12/12/2025", CustomTime: "06:15"},
			now:     morning,
			wantErr: ErrInvalidSchedule,
		},
		{
			name:    "unknown mode",
			cfg:     Config{Mode: "sometime"},
			now:     morning,
			wantErr: ErrInvalidSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.cfg, tt.now, loc, "20:00")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestPlannerAndReceipt(t *testing.T) {
	loc := mustLoc(t)
	now := time.Date(2025, 12, 10, 9, 30, 0, 0, loc)
	p := Planner{Location: loc, AfterHours: "20:00", Now: func() time.Time { return now }}
	session := uuid.New()

	sub, err := p.Plan(session, DefaultConfig(), map[string]int{"mappings": 3})
	require.NoError(t, err)
	assert.Equal(t, session, sub.SessionID)
	assert.True(t, sub.ScheduledFor.IsZero())
	assert.JSONEq(t, `{"mappings":3}`, string(sub.Payload))

	r := ReceiptFor(sub)
	assert.Equal(t, StatusSubmitted, r.Status)
	assert.Equal(t, "Integration job submitted successfully", r.Message)
	assert.Nil(t, r.ScheduledFor)

	sub, err = p.Plan(session, Config{Mode: ModeLater, ScheduleType: ScheduleAfterHours}, nil)
	require.NoError(t, err)
	r = ReceiptFor(sub)
	assert.Equal(t, StatusScheduled, r.Status)
	require.NotNil(t, r.ScheduledFor)
	assert.Equal(t, "Integration scheduled for Dec 10, 2025 at 8:00 PM PST", r.Message)

	_, err = p.Plan(session, Config{Mode: ModeLater, ScheduleType: ScheduleCustom}, nil)
	assert.ErrorIs(t, err, ErrScheduleIncomplete)
}

func TestLogSubmitter(t *testing.T) {
	r, err := LogSubmitter{}.Submit(context.Background(), Submission{ID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, r.Status)
}

type fakeExec struct {
	sql  []string
	args [][]any
	err  error
}

func (f *fakeExec) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

func TestPgSubmitter(t *testing.T) {
	db := &fakeExec{}
	s := NewPgSubmitter(db)

	require.NoError(t, s.EnsureSchema(context.Background()))
	assert.Contains(t, db.sql[0], "CREATE TABLE IF NOT EXISTS wizard_submissions")

	at := time.Date(2025, 12, 10, 20, 0, 0, 0, time.UTC)
	sub := Submission{
		ID:           uuid.New(),
		SessionID:    uuid.New(),
		Config:       Config{Mode: ModeLater, ScheduleType: ScheduleAfterHours},
		ScheduledFor: at,
		Payload:      json.RawMessage(`{}`),
	}
	r, err := s.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, r.Status)

	args := db.args[1]
	require.Len(t, args, 7)
	assert.Equal(t, sub.ID, args[0])
	assert.Equal(t, "later", args[2])
	assert.Equal(t, at, args[4])
	assert.Equal(t, []byte(`{}`), args[5])
}

func TestPgSubmitter_NowStoresNullSchedule(t *testing.T) {
	db := &fakeExec{}
	_, err := NewPgSubmitter(db).Submit(context.Background(), Submission{ID: uuid.New(), Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.Nil(t, db.args[0][4])
}

func TestPgSubmitter_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewPgSubmitter(&fakeExec{err: boom}).Submit(context.Background(), Submission{ID: uuid.New()})
	assert.ErrorIs(t, err, boom)
}
