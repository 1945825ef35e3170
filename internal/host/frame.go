package host

import "time"

// MaxDelta caps the frame time reported after a stall, such as a window
// being dragged or the process being suspended.
const MaxDelta = time.Second

// Frame tracks the time between consecutive frames. It implements
// anim.FrameSource.
type Frame struct {
	last  time.Time
	delta time.Duration
	count uint64
}

// Tick records the start of a frame at now and returns the elapsed time
// since the previous frame. The first frame reports zero.
func (f *Frame) Tick(now time.Time) time.Duration {
	if f.count == 0 {
		f.delta = 0
	} else {
		f.delta = min(max(now.Sub(f.last), 0), MaxDelta)
	}
	f.last = now
	f.count++
	return f.delta
}

// Delta returns the time the previous frame took.
func (f *Frame) Delta() time.Duration {
	return f.delta
}

// DeltaSeconds returns Delta in seconds.
func (f *Frame) DeltaSeconds() float64 {
	return f.delta.Seconds()
}

// Count returns the number of frames ticked.
func (f *Frame) Count() uint64 {
	return f.count
}

// FPS returns the instantaneous frame rate, or zero before two frames.
func (f *Frame) FPS() float64 {
	if f.delta <= 0 {
		return 0
	}
	return 1 / f.delta.Seconds()
}
