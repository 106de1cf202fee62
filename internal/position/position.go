// Package position tracks the two map markers and the fixed places they move
// between.
package position

import "github.com/f3rmion/closer/internal/geo"

// Places holds the fixed reference points of the map. It is built once and
// never mutated.
type Places struct {
	Connecticut geo.Coordinate // GF start
	Nepal       geo.Coordinate // ME start
	Alaska      geo.Coordinate // drift target for wrong answers
	Meet        geo.Coordinate // midpoint of Connecticut and Nepal
	NoPathHer   geo.Coordinate // GF target on the rejection path
	NoPathMe    geo.Coordinate // ME target on the rejection path
}

// NewPlaces derives the meet point from the two start locations.
func NewPlaces(connecticut, nepal, alaska, noPathMe geo.Coordinate) Places {
	return Places{
		Connecticut: connecticut,
		Nepal:       nepal,
		Alaska:      alaska,
		Meet:        geo.Midpoint(connecticut, nepal),
		NoPathHer:   alaska,
		NoPathMe:    noPathMe,
	}
}

// Snapshot is a saved pair of marker positions.
type Snapshot struct {
	GF geo.Coordinate
	ME geo.Coordinate
}

// Model owns the current GF and ME positions. Any coordinate is accepted.
type Model struct {
	places Places
	gf     geo.Coordinate
	me     geo.Coordinate
	saved  *Snapshot
}

// New returns a model with both markers at their start locations.
func New(places Places) *Model {
	m := &Model{places: places}
	m.Reset()
	return m
}

// Places returns the fixed reference points.
func (m *Model) Places() Places { return m.places }

// GF returns the current GF position.
func (m *Model) GF() geo.Coordinate { return m.gf }

// ME returns the current ME position.
func (m *Model) ME() geo.Coordinate { return m.me }

// Reset puts GF back on Connecticut and ME on Nepal and drops any snapshot.
func (m *Model) Reset() {
	m.gf = m.places.Connecticut
	m.me = m.places.Nepal
	m.saved = nil
}

// Commit sets both positions.
func (m *Model) Commit(gf, me geo.Coordinate) {
	m.gf = gf
	m.me = me
}

// Snapshot saves the current positions, replacing any earlier snapshot.
func (m *Model) Snapshot() {
	m.saved = &Snapshot{GF: m.gf, ME: m.me}
}

// Saved reports the current snapshot, if any.
func (m *Model) Saved() (Snapshot, bool) {
	if m.saved == nil {
		return Snapshot{}, false
	}
	return *m.saved, true
}

// Restore moves both markers back to the snapshot and clears it. It reports
// false, leaving positions untouched, when there is no snapshot.
func (m *Model) Restore() bool {
	if m.saved == nil {
		return false
	}
	m.gf = m.saved.GF
	m.me = m.saved.ME
	m.saved = nil
	return true
}
