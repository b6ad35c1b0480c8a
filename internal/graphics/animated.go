package graphics

import (
	"errors"
	"time"
)

var ErrNoFrames = errors.New("animated texture needs at least one frame")

// AnimatedTexture is an ordered loop of frames. It does not own a clock:
// callers pick the frame from an elapsed time they supply.
type AnimatedTexture struct {
	Frames []*Texture
	Period time.Duration
}

// NewAnimatedTexture creates a looping texture that advances one frame per
// period.
func NewAnimatedTexture(period time.Duration, frames ...*Texture) (*AnimatedTexture, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	for _, f := range frames {
		if f == nil {
			return nil, ErrNoFrames
		}
	}
	return &AnimatedTexture{Frames: frames, Period: period}, nil
}

// Len returns the frame count.
func (a *AnimatedTexture) Len() int {
	return len(a.Frames)
}

// Frame returns frame i modulo the frame count.
func (a *AnimatedTexture) Frame(i int) *Texture {
	n := len(a.Frames)
	i %= n
	if i < 0 {
		i += n
	}
	return a.Frames[i]
}

// FrameAt returns the frame showing after elapsed time.
func (a *AnimatedTexture) FrameAt(elapsed time.Duration) *Texture {
	return a.Frame(FrameIndex(elapsed, a.Period, len(a.Frames)))
}

// FrameIndex quantizes elapsed into period-sized buckets and wraps the
// bucket number by count. A non-positive period or count selects frame 0.
func FrameIndex(elapsed, period time.Duration, count int) int {
	if period <= 0 || count <= 0 || elapsed < 0 {
		return 0
	}
	return int((elapsed / period) % time.Duration(count))
}
