// Package run turns the operator's run choice into a submission and hands it
// to a Submitter. Executing the integration job is out of scope; a
// submission is only recorded.
package run

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode selects immediate or scheduled execution.
type Mode string

const (
	ModeNow   Mode = "now"
	ModeLater Mode = "later"
)

// ScheduleType selects how a later run is timed.
type ScheduleType string

const (
	ScheduleAfterHours ScheduleType = "afterHours"
	ScheduleCustom     ScheduleType = "custom"
)

var (
	// ErrScheduleIncomplete is returned when a custom schedule lacks a date
	// or a time.
	ErrScheduleIncomplete = errors.New("custom schedule needs both a date and a time")

	// ErrInvalidSchedule is returned for unparseable or past schedules and
	// unknown modes.
	ErrInvalidSchedule = errors.New("invalid schedule")
)

// Config is the run screen's state.
type Config struct {
	Mode         Mode         `json:"mode"`
	ScheduleType ScheduleType `json:"scheduleType"`
	CustomDate   string       `json:"customDate"` // YYYY-MM-DD
	CustomTime   string       `json:"customTime"` // HH:MM, 24h
}

// DefaultConfig runs immediately; if switched to later, after hours.
func DefaultConfig() Config {
	return Config{Mode: ModeNow, ScheduleType: ScheduleAfterHours}
}

// ParseClock parses a 24-hour "HH:MM" time of day.
func ParseClock(s string) (hour, minute int, err error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("time of day %q: want HH:MM", s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time of day %q: bad hour", s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time of day %q: bad minute", s)
	}
	return hour, minute, nil
}

// Resolve returns when cfg should run, in loc. The zero time means now.
//
// After-hours runs take place today at afterHours ("HH:MM"), or tomorrow if
// that moment has passed. Custom runs must name a future date and time.
func Resolve(cfg Config, now time.Time, loc *time.Location, afterHours string) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	switch cfg.Mode {
	case ModeNow, "":
		return time.Time{}, nil
	case ModeLater:
	default:
		return time.Time{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidSchedule, cfg.Mode)
	}

	switch cfg.ScheduleType {
	case ScheduleAfterHours, "":
		h, m, err := ParseClock(afterHours)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, loc)
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		return at, nil

	case ScheduleCustom:
		if strings.TrimSpace(cfg.CustomDate) == "" || strings.TrimSpace(cfg.CustomTime) == "" {
			return time.Time{}, ErrScheduleIncomplete
		}
		day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(cfg.CustomDate), loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidSchedule, cfg.CustomDate)
		}
		h, m, err := ParseClock(cfg.CustomTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		at := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc)
		if !at.After(now) {
			return time.Time{}, fmt.Errorf("%w: %s is in the past", ErrInvalidSchedule, at.Format(time.RFC3339))
		}
		return at, nil

	default:
		return time.Time{}, fmt.Errorf("%w: unknown schedule type %q", ErrInvalidSchedule, cfg.ScheduleType)
	}
}
