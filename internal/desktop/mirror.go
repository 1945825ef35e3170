// Package desktop mirrors toasts to the freedesktop.org notification daemon
// over the D-Bus session bus.
package desktop

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/imtricks/internal/config"
	"github.com/jmylchreest/imtricks/internal/model"
)

// D-Bus identifiers of the notification service.
const (
	BusName   = "org.freedesktop.Notifications"
	Path      = "/org/freedesktop/Notifications"
	Interface = "org.freedesktop.Notifications"

	notifyMethod = Interface + ".Notify"
	appName      = "imtricks"
	queueSize    = 32
)

// Urgency hint values understood by freedesktop notification servers.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// UrgencyFor maps a toast severity to a notification urgency.
func UrgencyFor(s model.Severity) byte {
	switch s {
	case model.SeverityDanger:
		return UrgencyCritical
	case model.SeverityWarning:
		return UrgencyNormal
	default:
		return UrgencyLow
	}
}

// caller is the part of dbus.BusObject the mirror uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Mirror forwards toasts to the desktop. Calls are made on a background
// goroutine so the render thread never waits on the bus.
type Mirror struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	conn        *dbus.Conn
	obj         caller
	enabled     bool
	minSeverity model.Severity

	queue  chan model.Toast
	done   chan struct{}
	closed bool
}

// Connect opens a private session bus connection and starts the mirror.
func Connect(cfg *config.Config, logger *slog.Logger) (*Mirror, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	m := newMirror(conn.Object(BusName, Path), cfg, logger)
	m.conn = conn
	return m, nil
}

func newMirror(obj caller, cfg *config.Config, logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Mirror{
		logger: logger,
		obj:    obj,
		queue:  make(chan model.Toast, queueSize),
		done:   make(chan struct{}),
	}
	m.UpdateConfig(cfg)
	go m.run()
	return m
}

// UpdateConfig applies the desktop section of cfg.
func (m *Mirror) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	minSev, err := model.ParseSeverity(cfg.Desktop.MinSeverity)
	if err != nil {
		m.logger.Warn("invalid desktop min_severity, mirroring everything", "error", err)
	}

	m.mu.Lock()
	m.enabled = cfg.Desktop.Mirror
	m.minSeverity = minSev
	m.mu.Unlock()
}

// Accepts reports whether a toast of severity s is mirrored.
func (m *Mirror) Accepts(s model.Severity) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accepts(s)
}

func (m *Mirror) accepts(s model.Severity) bool {
	return !m.closed && m.enabled && s >= m.minSeverity
}

// Notify queues a toast for the desktop. It returns false if the toast is
// filtered out or the queue is full.
func (m *Mirror) Notify(t model.Toast) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.accepts(t.Severity) {
		return false
	}
	select {
	case m.queue <- t:
		return true
	default:
		m.logger.Debug("desktop queue full, dropping toast", "id", t.ID)
		return false
	}
}

func (m *Mirror) run() {
	defer close(m.done)
	for t := range m.queue {
		id, err := m.send(t)
		if err != nil {
			m.logger.Warn("failed to mirror toast", "id", t.ID, "error", err)
			continue
		}
		m.logger.Debug("mirrored toast", "id", t.ID, "desktop_id", id)
	}
}

// send issues the Notify call and returns the daemon's notification id.
func (m *Mirror) send(t model.Toast) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(UrgencyFor(t.Severity)),
	}
	timeout := int32(t.ExpiresAt.Sub(t.CreatedAt).Milliseconds())

	call := m.obj.Call(notifyMethod, 0,
		appName,
		uint32(0),
		"",
		summaryFor(t.Severity),
		t.Message,
		[]string{},
		hints,
		timeout,
	)

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// summaryFor returns the notification title for a severity.
func summaryFor(s model.Severity) string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Close stops the mirror after draining queued toasts and closes the bus
// connection.
func (m *Mirror) Close() error {
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.queue)
	}
	m.mu.Unlock()

	<-m.done
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}
