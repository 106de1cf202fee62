// Package anim interpolates the two markers between start and end positions
// over wall-clock time.
//
// An Animation is a pure function of time: the host owns the frame pump and
// calls Sample once per display refresh. Animations cannot be cancelled; once
// started they run until Sample reports Done.
package anim

import (
	"context"
	"time"

	"github.com/f3rmion/closer/internal/geo"
)

// Durations used by the quiz flow.
const (
	MoveDuration  = 1100 * time.Millisecond
	DriftDuration = 1900 * time.Millisecond
)

// Path is a straight segment travelled by one marker.
type Path struct {
	From geo.Coordinate
	To   geo.Coordinate
}

// Frame is one sampled pair of positions.
type Frame struct {
	GF   geo.Coordinate
	ME   geo.Coordinate
	T    float64 // linear progress in [0,1]
	At   time.Time
	Done bool
}

// Animation moves GF and ME along their paths.
type Animation struct {
	gf       Path
	me       Path
	start    time.Time
	duration time.Duration
	ease     geo.Easing
}

// New starts an animation at `start`. A nil easing is linear.
func New(start time.Time, gf, me Path, duration time.Duration, ease geo.Easing) *Animation {
	if ease == nil {
		ease = geo.Identity
	}
	return &Animation{
		gf:       gf,
		me:       me,
		start:    start,
		duration: duration,
		ease:     ease,
	}
}

// Duration is the total running time.
func (a *Animation) Duration() time.Duration { return a.duration }

// End returns the final positions.
func (a *Animation) End() (gf, me geo.Coordinate) { return a.gf.To, a.me.To }

// Sample returns the positions at `now`.
func (a *Animation) Sample(now time.Time) Frame {
	linear := 1.0
	if a.duration > 0 {
		elapsed := now.Sub(a.start)
		if elapsed < 0 {
			elapsed = 0
		}
		linear = min(float64(elapsed)/float64(a.duration), 1)
	}
	t := a.ease(linear)

	return Frame{
		GF: geo.Coordinate{
			Lat: geo.Lerp(a.gf.From.Lat, a.gf.To.Lat, t),
			Lon: geo.Lerp(a.gf.From.Lon, a.gf.To.Lon, t),
		},
		ME: geo.Coordinate{
			Lat: geo.Lerp(a.me.From.Lat, a.me.To.Lat, t),
			Lon: geo.Lerp(a.me.From.Lon, a.me.To.Lon, t),
		},
		T:    linear,
		At:   now,
		Done: linear >= 1,
	}
}

// Play pumps frames from ticks into publish until the animation completes.
// It returns ctx.Err() if the context ends first; the animation itself keeps
// no state, so a later Sample still resolves it.
func Play(ctx context.Context, a *Animation, ticks <-chan time.Time, publish func(Frame)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			f := a.Sample(now)
			publish(f)
			if f.Done {
				return nil
			}
		}
	}
}
