// Package toast implements a time-boxed notification queue drawn as stacked
// banners.
//
// A Queue is not safe for concurrent use. It belongs to the render thread:
// Enqueue, Render and Reclaim are all called from the host's frame loop.
package toast

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jmylchreest/imtricks/internal/model"
)

// DefaultDuration is the lifetime given to toasts when none is configured.
const DefaultDuration = 3000 * time.Millisecond

// Queue holds toasts in insertion order.
type Queue struct {
	entries  []model.Toast
	duration time.Duration
	layout   Layout
	clock    func() time.Time
	logger   *slog.Logger
}

// Option configures a Queue.
type Option func(*Queue)

// WithClock sets the time source used by Enqueue.
func WithClock(clock func() time.Time) Option {
	return func(q *Queue) {
		if clock != nil {
			q.clock = clock
		}
	}
}

// WithDuration sets the lifetime applied to newly enqueued toasts.
func WithDuration(d time.Duration) Option {
	return func(q *Queue) {
		q.duration = max(d, 0)
	}
}

// WithLayout sets the banner geometry.
func WithLayout(l Layout) Option {
	return func(q *Queue) {
		q.layout = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// NewQueue creates an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		duration: DefaultDuration,
		layout:   DefaultLayout(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.logger == nil {
		q.logger = slog.Default()
	}
	return q
}

// Enqueue appends a toast that expires one duration from now.
// The message is copied; there is no deduplication and no capacity bound.
func (q *Queue) Enqueue(message string, severity model.Severity) model.Toast {
	now := q.clock()
	t, err := model.NewToast(message, severity, now, q.duration)
	if err != nil {
		q.logger.Warn("failed to generate toast id", "error", err)
		t = model.Toast{
			Message:   strings.Clone(message),
			Severity:  severity,
			CreatedAt: now,
			ExpiresAt: now.Add(q.duration),
		}
	}

	q.entries = append(q.entries, t)
	q.logger.Debug("toast enqueued",
		"id", t.ID,
		"severity", severity,
		"expires", t.ExpiresAt,
	)
	return t
}

// Render draws every toast that has not expired at now and returns how
// many were drawn. Toasts are visited in insertion order, so the oldest
// live toast sits nearest the anchored corner. Render never modifies the
// queue; expired toasts stay until Reclaim.
func (q *Queue) Render(s Surface, style Style, screen Size, now time.Time) int {
	if len(q.entries) == 0 {
		return 0
	}

	l := q.layout
	drawn := 0
	for _, t := range q.entries {
		if t.Expired(now) {
			continue
		}

		origin := l.Origin(screen, drawn)
		corner := origin.Add(Point{X: l.Width, Y: l.Height})
		s.FillRect(origin, corner, style.Background(), l.CornerRadius)
		s.FillRect(origin, Point{X: origin.X + l.AccentWidth, Y: corner.Y}, style.Accent(t.Severity), 0)

		text := q.fitText(s, t)
		s.DrawText(l.TextOrigin(origin, s.MeasureText(text)), style.Foreground(), text)
		drawn++
	}
	return drawn
}

// fitText shortens the message until it fits inside the banner.
func (q *Queue) fitText(s Surface, t model.Toast) string {
	avail := q.layout.Width - q.layout.AccentWidth - 2*q.layout.Padding
	text := t.MessageTruncated(len(t.Message))
	for n := len([]rune(text)); n > 0 && s.MeasureText(text).W > avail; n-- {
		text = t.MessageTruncated(n - 1)
	}
	return text
}

// Reclaim removes toasts that have expired at now, keeping the order of
// the rest, and returns how many were removed.
func (q *Queue) Reclaim(now time.Time) int {
	before := len(q.entries)
	q.entries = slices.DeleteFunc(q.entries, func(t model.Toast) bool {
		return t.Expired(now)
	})
	removed := before - len(q.entries)
	if removed > 0 {
		q.logger.Debug("reclaimed expired toasts", "count", removed, "remaining", len(q.entries))
	}
	return removed
}

// Len returns the number of stored toasts, expired or not.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Pending returns the number of toasts that have not expired at now.
func (q *Queue) Pending(now time.Time) int {
	n := 0
	for _, t := range q.entries {
		if !t.Expired(now) {
			n++
		}
	}
	return n
}

// Entries returns a copy of the stored toasts in insertion order.
func (q *Queue) Entries() []model.Toast {
	return slices.Clone(q.entries)
}

// Clear removes all toasts.
func (q *Queue) Clear() {
	clear(q.entries)
	q.entries = q.entries[:0]
}

// Duration returns the lifetime applied to new toasts.
func (q *Queue) Duration() time.Duration {
	return q.duration
}

// SetDuration changes the lifetime for toasts enqueued after this call.
// Existing toasts keep their expiry.
func (q *Queue) SetDuration(d time.Duration) {
	q.duration = max(d, 0)
}

// Layout returns the banner geometry.
func (q *Queue) Layout() Layout {
	return q.layout
}

// SetLayout changes the banner geometry used by the next Render.
func (q *Queue) SetLayout(l Layout) {
	q.layout = l
}
