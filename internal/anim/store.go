// Package anim keeps smoothed per-identifier scalars that survive between
// frames of an immediate-mode renderer.
//
// A Store is confined to the render thread. It holds no lock; hosts that
// touch a Store from more than one goroutine must synchronize themselves.
package anim

import (
	"errors"
	"math"
)

// Number is the set of scalar types a Store can animate.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// RateMode selects how speed is converted into a per-frame step.
type RateMode int

const (
	// RateFrame steps by speed * (1 - Δt). The step shrinks slightly as the
	// frame time grows, so the feel depends on the frame rate.
	RateFrame RateMode = iota
	// RateTime steps by speed * Δt, which is independent of the frame rate.
	// Speeds are then expressed in units per second.
	RateTime
)

// String returns the config name of the rate mode.
func (m RateMode) String() string {
	switch m {
	case RateFrame:
		return "frame"
	case RateTime:
		return "time"
	default:
		return "unknown"
	}
}

// ParseRateMode parses a rate mode config name.
func ParseRateMode(s string) (RateMode, error) {
	switch s {
	case "frame", "":
		return RateFrame, nil
	case "time":
		return RateTime, nil
	default:
		return RateFrame, ErrInvalidRateMode
	}
}

// Precondition errors. Advance never changes an entry when it returns one.
var (
	ErrEmptyID         = errors.New("animation id cannot be empty")
	ErrInvalidRange    = errors.New("animation min must not exceed max")
	ErrInvalidSpeed    = errors.New("animation speed must be a non-negative number")
	ErrInvalidRateMode = errors.New("rate mode must be \"frame\" or \"time\"")
)

// FrameSource reports the wall time the previous frame took, in seconds.
type FrameSource interface {
	DeltaSeconds() float64
}

// FixedDelta is a FrameSource with a constant frame time.
type FixedDelta float64

// DeltaSeconds implements FrameSource.
func (d FixedDelta) DeltaSeconds() float64 {
	return float64(d)
}

// Store maps identifiers to animated values of a single numeric type.
// Separate Store instances are separate namespaces.
type Store[T Number] struct {
	frame  FrameSource
	mode   RateMode
	values map[string]T
}

// IntStore animates integer values; steps are truncated toward zero.
type IntStore = Store[int]

// FloatStore animates continuous values.
type FloatStore = Store[float64]

// NewStore creates an empty Store reading frame times from frame.
func NewStore[T Number](frame FrameSource, mode RateMode) *Store[T] {
	if frame == nil {
		frame = FixedDelta(0)
	}
	return &Store[T]{
		frame:  frame,
		mode:   mode,
		values: make(map[string]T),
	}
}

// NewIntStore creates an IntStore.
func NewIntStore(frame FrameSource, mode RateMode) *IntStore {
	return NewStore[int](frame, mode)
}

// NewFloatStore creates a FloatStore.
func NewFloatStore(frame FrameSource, mode RateMode) *FloatStore {
	return NewStore[float64](frame, mode)
}

// Advance moves the value for id one frame toward max (targetHigh) or min,
// clamps it to [min, max] and returns it.
//
// An unseen id starts at zero, clamped into the range.
func (s *Store[T]) Advance(id string, targetHigh bool, min, max T, speed float64) (T, error) {
	if id == "" {
		return 0, ErrEmptyID
	}
	if min > max {
		return 0, ErrInvalidRange
	}
	if speed < 0 || math.IsNaN(speed) {
		return 0, ErrInvalidSpeed
	}

	value, ok := s.values[id]
	if !ok {
		value = clamp(0, min, max)
	}

	step := s.step(speed)
	if targetHigh {
		if value < max {
			value = convert(float64(value)+step, min, max)
		}
	} else {
		if value > min {
			value = convert(float64(value)-step, min, max)
		}
	}

	value = clamp(value, min, max)
	s.values[id] = value
	return value, nil
}

func (s *Store[T]) step(speed float64) float64 {
	dt := s.frame.DeltaSeconds()
	if s.mode == RateTime {
		return speed * dt
	}
	return speed * (1 - dt)
}

// Value returns the current value for id without advancing it.
func (s *Store[T]) Value(id string) (T, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Forget drops the entry for id; the next Advance starts it from zero again.
func (s *Store[T]) Forget(id string) {
	delete(s.values, id)
}

// Reset drops every entry.
func (s *Store[T]) Reset() {
	clear(s.values)
}

// Len returns the number of tracked identifiers.
func (s *Store[T]) Len() int {
	return len(s.values)
}

// Mode returns the current rate mode.
func (s *Store[T]) Mode() RateMode {
	return s.mode
}

// SetMode changes the rate mode. Existing values are kept.
func (s *Store[T]) SetMode(mode RateMode) {
	s.mode = mode
}

// convert narrows f to T. The float is bounded first so integer conversion
// never overflows; integer types then truncate toward zero.
func convert[T Number](f float64, lo, hi T) T {
	f = math.Max(float64(lo), math.Min(f, float64(hi)))
	return T(f)
}

func clamp[T Number](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
