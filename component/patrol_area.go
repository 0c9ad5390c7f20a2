package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// DefaultFallbackRadius bounds random points of an area that has no usable polygon.
	DefaultFallbackRadius = 5.0

	maxSampleAttempts = 50
)

// PatrolArea is a closed polygon that wandering enemies are kept inside.
// Vertices connect in order and the last one wraps to the first. A nil vertex
// is unassigned; an area with fewer than three vertices or any unassigned
// vertex is degenerate and does not constrain anything.
type PatrolArea struct {
	Name string

	origin         cp.Vector
	points         []*cp.Vector
	rng            Rand
	fallbackRadius float64
}

// NewPatrolArea copies points so later edits by the caller do not change the area.
func NewPatrolArea(origin cp.Vector, points []*cp.Vector, rng Rand) *PatrolArea {
	copied := make([]*cp.Vector, len(points))
	for i, p := range points {
		if p == nil {
			continue
		}
		v := *p
		copied[i] = &v
	}
	return &PatrolArea{
		origin:         origin,
		points:         copied,
		rng:            rng,
		fallbackRadius: DefaultFallbackRadius,
	}
}

// NewPatrolAreaFromVertices builds an area where every vertex is assigned.
func NewPatrolAreaFromVertices(origin cp.Vector, vertices []cp.Vector, rng Rand) *PatrolArea {
	points := make([]*cp.Vector, len(vertices))
	for i := range vertices {
		points[i] = &vertices[i]
	}
	return NewPatrolArea(origin, points, rng)
}

// SetFallbackRadius changes the disc used by RandomInteriorPoint on a degenerate area.
func (a *PatrolArea) SetFallbackRadius(r float64) {
	if a == nil || r < 0 {
		return
	}
	a.fallbackRadius = r
}

func (a *PatrolArea) Origin() cp.Vector {
	if a == nil {
		return cp.Vector{}
	}
	return a.origin
}

// Degenerate reports whether the area is treated as unbounded.
func (a *PatrolArea) Degenerate() bool {
	if a == nil || len(a.points) < 3 {
		return true
	}
	for _, p := range a.points {
		if p == nil {
			return true
		}
	}
	return false
}

// Vertices returns the assigned vertices in order.
func (a *PatrolArea) Vertices() []cp.Vector {
	if a == nil {
		return nil
	}
	out := make([]cp.Vector, 0, len(a.points))
	for _, p := range a.points {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// Bounds returns the axis-aligned box around the polygon. ok is false for a
// degenerate area.
func (a *PatrolArea) Bounds() (bb cp.BB, ok bool) {
	if a.Degenerate() {
		return cp.BB{}, false
	}
	first := *a.points[0]
	bb = cp.BB{L: first.X, B: first.Y, R: first.X, T: first.Y}
	for _, p := range a.points[1:] {
		bb.L = math.Min(bb.L, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.R = math.Max(bb.R, p.X)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb, true
}

// Contains applies the even-odd rule with a ray cast towards +x.
// Points exactly on a right-hand or lower edge may report false.
func (a *PatrolArea) Contains(p cp.Vector) bool {
	if a.Degenerate() {
		return true
	}

	crossings := 0
	n := len(a.points)
	for i := 0; i < n; i++ {
		p1 := *a.points[i]
		p2 := *a.points[(i+1)%n]

		if (p1.Y > p.Y) != (p2.Y > p.Y) &&
			p.X < (p2.X-p1.X)*(p.Y-p1.Y)/(p2.Y-p1.Y)+p1.X {
			crossings++
		}
	}
	return crossings%2 == 1
}

// NearestInteriorPoint returns the point on the polygon boundary closest to p.
// A degenerate area answers with its origin.
func (a *PatrolArea) NearestInteriorPoint(p cp.Vector) cp.Vector {
	if a.Degenerate() {
		return a.Origin()
	}

	nearest := *a.points[0]
	nearestDist := p.Distance(nearest)

	n := len(a.points)
	for i := 0; i < n; i++ {
		onEdge := nearestOnSegment(*a.points[i], *a.points[(i+1)%n], p)
		if d := p.Distance(onEdge); d < nearestDist {
			nearestDist = d
			nearest = onEdge
		}
	}
	return nearest
}

// RandomInteriorPoint rejection-samples the bounding box. After
// maxSampleAttempts misses the last sample is returned even though it lies
// outside the polygon; very thin polygons can hit this.
func (a *PatrolArea) RandomInteriorPoint() cp.Vector {
	if a.Degenerate() {
		return a.randomInDisc()
	}

	bb, _ := a.Bounds()
	var candidate cp.Vector
	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		candidate = cp.Vector{
			X: Range(a.rng, bb.L, bb.R),
			Y: Range(a.rng, bb.B, bb.T),
		}
		if a.Contains(candidate) {
			break
		}
	}
	return candidate
}

func (a *PatrolArea) randomInDisc() cp.Vector {
	origin := a.Origin()
	if a == nil || a.rng == nil {
		return origin
	}
	// sqrt keeps the density uniform over the disc area
	r := a.fallbackRadius * math.Sqrt(a.rng.Float64())
	theta := 2 * math.Pi * a.rng.Float64()
	return origin.Add(cp.Vector{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
}

func nearestOnSegment(start, end, p cp.Vector) cp.Vector {
	edge := end.Sub(start)
	length := edge.Length()
	dir := edge.Normalize()

	d := cp.Clamp(p.Sub(start).Dot(dir), 0, length)
	return start.Add(dir.Mult(d))
}
