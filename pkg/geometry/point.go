// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3D represents a position in 3D space. Y is up; routing is authored
// on the horizontal XZ plane.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPoint3D creates a new Point3D.
func NewPoint3D(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Vec converts the point to a gonum r3 vector.
func (p Point3D) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// FromVec converts a gonum r3 vector to a Point3D.
func FromVec(v r3.Vec) Point3D {
	return Point3D{X: v.X, Y: v.Y, Z: v.Z}
}

// Distance returns the Euclidean distance to another point.
func (p Point3D) Distance(other Point3D) float64 {
	return r3.Norm(r3.Sub(other.Vec(), p.Vec()))
}

// Add returns the sum of two points.
func (p Point3D) Add(other Point3D) Point3D {
	return FromVec(r3.Add(p.Vec(), other.Vec()))
}

// Sub returns the difference of two points.
func (p Point3D) Sub(other Point3D) Point3D {
	return FromVec(r3.Sub(p.Vec(), other.Vec()))
}

// Scale returns the point scaled by a factor.
func (p Point3D) Scale(factor float64) Point3D {
	return FromVec(r3.Scale(factor, p.Vec()))
}

// Midpoint returns the point halfway between p and other.
func (p Point3D) Midpoint(other Point3D) Point3D {
	return p.Add(other).Scale(0.5)
}

// AngleXZ returns the heading, in radians, of the vector from p to other
// projected onto the horizontal plane. Vertical offset is ignored.
func (p Point3D) AngleXZ(other Point3D) float64 {
	return math.Atan2(other.Z-p.Z, other.X-p.X)
}

// SnapToGrid rounds each coordinate independently to the nearest multiple
// of gridSize. Idempotent: snapping a snapped point is a no-op.
// A gridSize <= 0 returns the point unchanged.
func (p Point3D) SnapToGrid(gridSize float64) Point3D {
	if gridSize <= 0 {
		return p
	}
	return Point3D{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
		Z: math.Round(p.Z/gridSize) * gridSize,
	}
}

// AngleDiff returns the absolute difference between two angles, normalized
// into [0, π] by reflecting differences greater than π.
func AngleDiff(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}

// DistanceToSegmentXZ returns the distance from p to the segment a-b,
// measured on the horizontal plane. Used for hit-testing on the plan
// view, where height is a display attribute.
func DistanceToSegmentXZ(p, a, b Point3D) float64 {
	dx := b.X - a.X
	dz := b.Z - a.Z
	lenSq := dx*dx + dz*dz
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Z-a.Z)
	}
	t := ((p.X-a.X)*dx + (p.Z-a.Z)*dz) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Z-(a.Z+t*dz))
}

// PolylineLength returns the total length of the polyline through points.
func PolylineLength(points []Point3D) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// Centroid computes the centroid (average position) of a set of points.
func Centroid(points []Point3D) Point3D {
	if len(points) == 0 {
		return Point3D{}
	}
	sum := r3.Vec{}
	for _, p := range points {
		sum = r3.Add(sum, p.Vec())
	}
	return FromVec(r3.Scale(1/float64(len(points)), sum))
}

// Bounds3D is an axis-aligned bounding box in 3D space.
type Bounds3D struct {
	Min Point3D `json:"min"`
	Max Point3D `json:"max"`
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point3D) Bounds3D {
	if len(points) == 0 {
		return Bounds3D{}
	}
	b := Bounds3D{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b
}

// Contains returns true if the point is inside the box.
func (b Bounds3D) Contains(p Point3D) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
