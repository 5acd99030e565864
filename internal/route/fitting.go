package route

import (
	"math"

	"cable-router/pkg/geometry"
)

// FittingType identifies the physical fitting piece rendered at a point.
type FittingType string

const (
	FittingElbow90     FittingType = "elbow-90"
	FittingElbow45     FittingType = "elbow-45"
	FittingTee         FittingType = "tee"
	FittingCross       FittingType = "cross"
	FittingReducer     FittingType = "reducer"
	FittingEndCap      FittingType = "end-cap"
	FittingJunctionBox FittingType = "junction-box"
)

// CableFitting annotates a point with the bend geometry detected there.
type CableFitting struct {
	Type FittingType `json:"type"`

	// Rotation is the incoming heading on the working plane, in radians.
	// The renderer orients the fitting piece from it.
	Rotation float64 `json:"rotation"`
}

// Bend classification bands. Design constants, not derived: a bend whose
// heading change falls inside a band gets the matching fitting, anything
// shallower needs no physical fitting piece. The bands must not overlap
// and are centered on 90° and 45°.
const (
	elbow90Min = 0.4 * math.Pi
	elbow90Max = 0.6 * math.Pi
	elbow45Min = 0.2 * math.Pi
	elbow45Max = 0.3 * math.Pi
)

// ClassifyBend classifies the bend at cur given its neighbors. A nil
// prev or next means cur is a route endpoint, which is never a bend.
// The result is nil when no fitting is required.
func ClassifyBend(prev *geometry.Point3D, cur geometry.Point3D, next *geometry.Point3D) *CableFitting {
	if prev == nil || next == nil {
		return nil
	}

	angle1 := prev.AngleXZ(cur)
	angle2 := cur.AngleXZ(*next)
	diff := geometry.AngleDiff(angle1, angle2)

	switch {
	case diff > elbow90Min && diff < elbow90Max:
		return &CableFitting{Type: FittingElbow90, Rotation: angle1}
	case diff > elbow45Min && diff < elbow45Max:
		return &CableFitting{Type: FittingElbow45, Rotation: angle1}
	}
	return nil
}
