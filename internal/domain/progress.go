package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Progress is a user's completion percentage for one topic. Topics are lesson
// types, so a user has at most one Progress per specialization.
type Progress struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Topic              string    `json:"topic"`
	ProgressPercentage float64   `json:"progress_percentage"`
	LastUpdated        time.Time `json:"last_updated"`
}

// NewProgress creates a validated Progress.
func NewProgress(userID uuid.UUID, topic string, percentage float64) (*Progress, error) {
	p := &Progress{
		ID:                 uuid.New(),
		UserID:             userID,
		Topic:              strings.TrimSpace(topic),
		ProgressPercentage: percentage,
		LastUpdated:        time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Progress has valid data.
func (p *Progress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if p.Topic == "" {
		return ErrEmptyTopic
	}
	if p.ProgressPercentage < 0 || p.ProgressPercentage > 100 {
		return ErrInvalidPercentage
	}
	return nil
}
