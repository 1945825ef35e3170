package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ToastState is the lifecycle state of a toast relative to a point in time.
type ToastState int

const (
	// ToastPending means the toast has not expired and is drawn.
	ToastPending ToastState = iota
	// ToastExpired means the toast is past its expiry and is skipped when drawing.
	ToastExpired
)

// String returns the string representation of ToastState.
func (s ToastState) String() string {
	switch s {
	case ToastPending:
		return "pending"
	case ToastExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Toast is a single time-boxed notification banner.
// Toasts are immutable once created; removal from a queue is the only
// further lifecycle step.
type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Validation errors.
var (
	ErrEmptyToastID     = errors.New("toast id cannot be empty")
	ErrInvalidSeverity  = errors.New("severity must be success, warning, danger, or default")
	ErrExpiryBeforeBirth = errors.New("toast expires before it was created")
)

// NewToast creates a toast created at now that lives for ttl.
// The message is copied so the toast never aliases caller-owned memory.
func NewToast(message string, severity Severity, now time.Time, ttl time.Duration) (Toast, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return Toast{}, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return Toast{
		ID:        id.String(),
		Message:   strings.Clone(message),
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Validate checks that the toast is well formed.
func (t Toast) Validate() error {
	if t.ID == "" {
		return ErrEmptyToastID
	}
	if !t.Severity.Valid() {
		return ErrInvalidSeverity
	}
	if t.ExpiresAt.Before(t.CreatedAt) {
		return ErrExpiryBeforeBirth
	}
	return nil
}

// Expired reports whether the toast has expired at now.
// A toast is still drawn at exactly its expiry instant.
func (t Toast) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// State returns the lifecycle state at now.
func (t Toast) State(now time.Time) ToastState {
	if t.Expired(now) {
		return ToastExpired
	}
	return ToastPending
}

// Remaining returns how long the toast has left at now, or zero once expired.
func (t Toast) Remaining(now time.Time) time.Duration {
	if t.Expired(now) {
		return 0
	}
	return t.ExpiresAt.Sub(now)
}

// MessageTruncated returns the message truncated to maxLen runes.
// If the message is longer, it is truncated and "..." is appended.
func (t Toast) MessageTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Collapse whitespace and newlines to single spaces
	msg := []rune(strings.Join(strings.Fields(t.Message), " "))

	if len(msg) <= maxLen {
		return string(msg)
	}
	if maxLen <= 3 {
		return string(msg[:maxLen])
	}
	return string(msg[:maxLen-3]) + "..."
}
