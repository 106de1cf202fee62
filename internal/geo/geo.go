// Package geo maps latitude/longitude pairs onto a flat percentage plane and
// interpolates between them.
//
// The plane is a plain linear degree-to-percent transform, not a cartographic
// projection. Nothing here clamps its inputs: callers keep values in range.
package geo

// Coordinate is a point in degrees.
type Coordinate struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// PlanePoint is a position on the map plane, both axes in percent.
type PlanePoint struct {
	X float64
	Y float64
}

// Easing maps linear progress in [0,1] to an interpolation factor.
type Easing func(t float64) float64

// ToPlanePercent converts lat/lon to plane percentages with (0,0) at the
// top-left corner. Out-of-range input yields output outside [0,100].
func ToPlanePercent(lat, lon float64) PlanePoint {
	return PlanePoint{
		X: (lon + 180) / 360 * 100,
		Y: (90 - lat) / 180 * 100,
	}
}

// Plane is ToPlanePercent for a Coordinate.
func (c Coordinate) Plane() PlanePoint {
	return ToPlanePercent(c.Lat, c.Lon)
}

// NormalizeLongitude applies a single ±360 correction. Inputs more than one
// wrap away from (-180,180] stay out of range.
func NormalizeLongitude(lon float64) float64 {
	if lon > 180 {
		return lon - 360
	}
	if lon < -180 {
		return lon + 360
	}
	return lon
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MoveToward returns the point ratio of the way from `from` to `to`, per axis.
func MoveToward(from, to Coordinate, ratio float64) Coordinate {
	return Coordinate{
		Lat: from.Lat + (to.Lat-from.Lat)*ratio,
		Lon: from.Lon + (to.Lon-from.Lon)*ratio,
	}
}

// Midpoint is the per-axis average of a and b.
func Midpoint(a, b Coordinate) Coordinate {
	return Coordinate{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}

// Identity is the linear easing.
func Identity(t float64) float64 { return t }

// Bounce curve constants.
const (
	bounceN1 = 7.5625
	bounceD1 = 2.75
)

// EaseOutBounce is the standard four-segment bounce-out curve.
func EaseOutBounce(t float64) float64 {
	if t < 1/bounceD1 {
		return bounceN1 * t * t
	}
	if t < 2/bounceD1 {
		p := t - 1.5/bounceD1
		return bounceN1*p*p + 0.75
	}
	if t < 2.5/bounceD1 {
		p := t - 2.25/bounceD1
		return bounceN1*p*p + 0.9375
	}
	p := t - 2.625/bounceD1
	return bounceN1*p*p + 0.984375
}
