package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToast(t *testing.T) {
	now := time.UnixMilli(1000)
	tst, err := NewToast("Saved", SeveritySuccess, now, 3*time.Second)
	require.NoError(t, err)

	assert.Len(t, tst.ID, 26)
	assert.Equal(t, "Saved", tst.Message)
	assert.Equal(t, SeveritySuccess, tst.Severity)
	assert.Equal(t, now, tst.CreatedAt)
	assert.Equal(t, int64(4000), tst.ExpiresAt.UnixMilli())
	assert.NoError(t, tst.Validate())
}

func TestNewToast_OwnsMessage(t *testing.T) {
	buf := []byte("transient")
	tst, err := NewToast(string(buf), SeverityDefault, time.Now(), time.Second)
	require.NoError(t, err)

	copy(buf, "XXXXXXXXX")
	assert.Equal(t, "transient", tst.Message)
}

func TestToast_Validate(t *testing.T) {
	base := func() Toast {
		now := time.Now()
		return Toast{ID: "01H", Severity: SeverityWarning, CreatedAt: now, ExpiresAt: now.Add(time.Second)}
	}

	tests := []struct {
		name    string
		modify  func(*Toast)
		wantErr error
	}{
		{
			name:    "valid toast",
			modify:  func(t *Toast) {},
			wantErr: nil,
		},
		{
			name:    "empty id",
			modify:  func(t *Toast) { t.ID = "" },
			wantErr: ErrEmptyToastID,
		},
		{
			name:    "unknown severity",
			modify:  func(t *Toast) { t.Severity = Severity(42) },
			wantErr: ErrInvalidSeverity,
		},
		{
			name:    "expires before created",
			modify:  func(t *Toast) { t.ExpiresAt = t.CreatedAt.Add(-time.Millisecond) },
			wantErr: ErrExpiryBeforeBirth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tst := base()
			tt.modify(&tst)
			assert.Equal(t, tt.wantErr, tst.Validate())
		})
	}
}

func TestToast_ExpiryBoundary(t *testing.T) {
	tst := Toast{ExpiresAt: time.UnixMilli(4000)}

	assert.False(t, tst.Expired(time.UnixMilli(3999)))
	assert.False(t, tst.Expired(time.UnixMilli(4000)), "toast is still shown at its expiry instant")
	assert.True(t, tst.Expired(time.UnixMilli(4001)))

	assert.Equal(t, ToastPending, tst.State(time.UnixMilli(3999)))
	assert.Equal(t, ToastExpired, tst.State(time.UnixMilli(4001)))
	assert.Equal(t, "pending", ToastPending.String())
	assert.Equal(t, "expired", ToastExpired.String())
}

func TestToast_Remaining(t *testing.T) {
	tst := Toast{ExpiresAt: time.UnixMilli(4000)}

	assert.Equal(t, 1500*time.Millisecond, tst.Remaining(time.UnixMilli(2500)))
	assert.Equal(t, time.Duration(0), tst.Remaining(time.UnixMilli(5000)))
}

func TestToast_MessageTruncated(t *testing.T) {
	tests := []struct {
		message string
		maxLen  int
		want    string
	}{
		{"short", 10, "short"},
		{"a much longer message", 10, "a much ..."},
		{"multi\nline   text", 20, "multi line text"},
		{"abcdef", 3, "abc"},
		{"anything", 0, ""},
		{"héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			tst := Toast{Message: tt.message}
			assert.Equal(t, tt.want, tst.MessageTruncated(tt.maxLen))
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"success", SeveritySuccess, false},
		{"Warning", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"danger", SeverityDanger, false},
		{"error", SeverityDanger, false},
		{"default", SeverityDefault, false},
		{"info", SeverityDefault, false},
		{"", SeverityDefault, false},
		{"fatal", SeverityDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_TextRoundTrip(t *testing.T) {
	for _, s := range Severities() {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var parsed Severity
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "unknown", Severity(99).String())
	assert.False(t, Severity(99).Valid())
}
