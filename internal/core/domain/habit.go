package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitExists        = errors.New("habit already exists")
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidColor       = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidTime        = errors.New("invalid preferred time format (must be HH:MM 24h)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
var timeRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	DefaultColor         = "#10b981"
	DefaultIcon          = "fa-star"
	DefaultPreferredTime = "08:00"
	MaxNameLen           = 100
	MaxDescLen           = 500
)

type Habit struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	Icon          string    `json:"icon"`
	PreferredTime string    `json:"preferred_time,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewHabit(userID, name, color, icon, preferredTime, description string) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrHabitNameTooLong
	}
	if len(description) > MaxDescLen {
		return nil, ErrHabitDescTooLong
	}

	if color == "" {
		color = DefaultColor
	} else if !colorRegex.MatchString(color) {
		return nil, ErrInvalidColor
	}

	if icon == "" {
		icon = DefaultIcon
	}

	if preferredTime == "" {
		preferredTime = DefaultPreferredTime
	} else if !timeRegex.MatchString(preferredTime) {
		return nil, ErrInvalidTime
	}

	return &Habit{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Color:         color,
		Icon:          icon,
		PreferredTime: preferredTime,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

type HabitRepository interface {
	// Create appends a new habit to the user's collection.
	Create(ctx context.Context, habit *Habit) error

	// GetByID returns ErrHabitNotFound when the habit does not belong to the user.
	GetByID(ctx context.Context, userID, id string) (*Habit, error)

	// ListByUserID returns habits in creation order.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	Delete(ctx context.Context, userID, id string) error
}
