package domain

import (
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// User is a learner. Users are identified by ID and unique by email.
type User struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Specialization   Specialization `json:"specialization"`
	Level            Level          `json:"level"`
	TotalLessons     int            `json:"total_lessons"`
	CompletedLessons int            `json:"completed_lessons"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewUser creates a validated User. An empty level defaults to Beginner.
func NewUser(name, email string, specialization Specialization, level Level) (*User, error) {
	if level == "" {
		level = LevelBeginner
	}
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		Email:          strings.TrimSpace(email),
		Specialization: specialization,
		Level:          level,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyUserName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if err := validate.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}
	if !u.Specialization.Valid() {
		return ErrInvalidSpecialization
	}
	if !u.Level.Valid() {
		return ErrInvalidLevel
	}
	if u.TotalLessons < 0 || u.CompletedLessons < 0 || u.CompletedLessons > u.TotalLessons {
		return ErrInvalidLessonCounts
	}
	return nil
}

// UpdateProfile replaces the user's declared profile, as on re-registration.
func (u *User) UpdateProfile(name string, specialization Specialization, level Level) error {
	if level == "" {
		level = LevelBeginner
	}
	updated := *u
	updated.Name = strings.TrimSpace(name)
	updated.Specialization = specialization
	updated.Level = level
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*u = updated
	return nil
}

// CompletionPercentage returns completed/total as a percentage rounded to one
// decimal place, or 0 when the user has no lessons.
func (u *User) CompletionPercentage() float64 {
	return Percentage(u.CompletedLessons, u.TotalLessons)
}

// Percentage returns part/whole*100 rounded to one decimal place; 0 when whole is 0.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
