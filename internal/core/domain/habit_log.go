package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidLog  = errors.New("invalid habit log data")
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrFutureDate  = errors.New("cannot log a completion for a future date")
)

// DateLayout is the canonical calendar-day layout. Strings in this layout sort
// chronologically.
const DateLayout = "2006-01-02"

type HabitLog struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habit_id"`
	Date        string     `json:"date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewHabitLog creates the record for the first toggle of a (habit, date) pair,
// which is always a completion.
func NewHabitLog(habitID, date string, now time.Time) *HabitLog {
	at := now.UTC()
	return &HabitLog{
		ID:          uuid.NewString(),
		HabitID:     habitID,
		Date:        date,
		Completed:   true,
		CompletedAt: &at,
	}
}

// Toggle flips the completion flag in place.
func (l *HabitLog) Toggle(now time.Time) {
	l.Completed = !l.Completed
	if l.Completed {
		at := now.UTC()
		l.CompletedAt = &at
	} else {
		l.CompletedAt = nil
	}
}

func (l *HabitLog) Validate() error {
	if strings.TrimSpace(l.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if _, err := ParseDate(l.Date); err != nil {
		return err
	}
	return nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

type HabitLogRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*HabitLog, error)

	// Toggle creates the (habit, date) record on first use and flips it afterwards.
	// Implementations must keep at most one record per pair.
	Toggle(ctx context.Context, userID, habitID, date string, now time.Time) (*HabitLog, error)

	// DeleteByHabitID removes every log of a habit (cascade on habit delete).
	DeleteByHabitID(ctx context.Context, userID, habitID string) error
}
