package editor

import (
	"math"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// Hit-test thresholds in plane units. Point selection is deliberately
// tight so body selection stays reachable just outside it.
const (
	originThreshold    = 0.5
	pointThreshold     = 0.25
	immediateThreshold = 0.15
	bodyThreshold      = 0.5
)

// HitTest resolves a plane-space point to the highest-priority selection
// candidate within threshold: origin first, then entity defining points,
// then entity bodies. Returns nil when nothing qualifies.
//
// Preview entities are invisible to hit-testing. A defining point closer
// than immediateThreshold wins without considering body hits at all.
func HitTest(s *sketch.Sketch, p geometry.Vector2) *sketch.SelectionCandidate {
	if p.Length() < originThreshold {
		c := sketch.OriginCandidate()
		return &c
	}

	var bestPoint *sketch.SelectionCandidate
	bestPointDist := pointThreshold
	for _, e := range s.Entities {
		if e.Preview {
			continue
		}
		for i := 0; i < e.Geometry.PointCount(); i++ {
			pt, ok := e.Geometry.DefiningPoint(i)
			if !ok {
				continue
			}
			if d := pt.Distance(p); d < bestPointDist {
				c := sketch.PointCandidate(e.ID, i)
				bestPoint = &c
				bestPointDist = d
			}
		}
	}
	if bestPoint != nil && bestPointDist < immediateThreshold {
		return bestPoint
	}

	var bestBody *sketch.SelectionCandidate
	bestBodyDist := bodyThreshold
	for _, e := range s.Entities {
		if e.Preview {
			continue
		}
		if d := bodyDistance(e, p); d < bestBodyDist {
			c := sketch.EntityCandidate(e.ID)
			bestBody = &c
			bestBodyDist = d
		}
	}

	// Points outrank bodies
	if bestPoint != nil {
		return bestPoint
	}
	return bestBody
}

// ResolveCandidate resolves a pointer position to a selection candidate.
// A snap point within the snap radius short-circuits the hit-test search
// and is translated directly into its implied candidate.
func ResolveCandidate(s *sketch.Sketch, p geometry.Vector2, snap *sketch.SnapPoint, snapRadius float64) *sketch.SelectionCandidate {
	if snap != nil && snap.Distance <= snapRadius {
		if c := CandidateFromSnap(s, snap); c != nil {
			return c
		}
	}
	return HitTest(s, p)
}

// bodyDistance measures how far p is from the drawable body of an entity
func bodyDistance(e *sketch.Entity, p geometry.Vector2) float64 {
	switch g := e.Geometry.(type) {
	case *sketch.PointGeometry:
		return g.Position.Distance(p)
	case *sketch.LineGeometry:
		return geometry.DistanceToSegment(g.Start, g.End, p)
	case *sketch.CircleGeometry:
		return math.Abs(g.Center.Distance(p) - g.Radius)
	case *sketch.ArcGeometry:
		return math.Abs(g.Center.Distance(p) - g.Radius)
	case *sketch.EllipseGeometry:
		// Approximated by the mean radius; good enough for picking
		return math.Abs(g.Center.Distance(p) - (g.SemiMajor+g.SemiMinor)/2)
	}
	return math.Inf(1)
}

// CandidateFromSnap translates an externally resolved snap point into
// the selection candidate it implies, short-circuiting the hit-test
// search. Grid snaps and unresolvable snaps yield nil.
func CandidateFromSnap(s *sketch.Sketch, snap *sketch.SnapPoint) *sketch.SelectionCandidate {
	if snap == nil {
		return nil
	}

	switch snap.Kind {
	case sketch.SnapOrigin:
		c := sketch.OriginCandidate()
		return &c
	case sketch.SnapEndpoint, sketch.SnapCenter:
		if cp, ok := snapConstraintPoint(s, snap); ok && !cp.Origin {
			c := sketch.PointCandidate(cp.Entity, cp.Index)
			return &c
		}
	case sketch.SnapMidpoint:
		if snap.Entity != "" && s.Entity(snap.Entity) != nil {
			pos := snap.Position
			c := sketch.EntityCandidate(snap.Entity)
			c.Position = &pos
			return &c
		}
	case sketch.SnapIntersection:
		// A floating position with no single owner; keep the location
		pos := snap.Position
		c := sketch.SelectionCandidate{Kind: sketch.CandidateEntity, Position: &pos}
		if snap.Entity != "" {
			c.Entity = snap.Entity
		}
		return &c
	}
	return nil
}

// snapConstraintPoint maps a snap onto the defining point of its owning
// entity nearest the snap position. Only endpoint, center, and origin
// snaps have a defining-point form.
func snapConstraintPoint(s *sketch.Sketch, snap *sketch.SnapPoint) (sketch.ConstraintPoint, bool) {
	if snap == nil {
		return sketch.ConstraintPoint{}, false
	}
	if snap.Kind == sketch.SnapOrigin {
		return sketch.OriginPoint(), true
	}
	if snap.Kind != sketch.SnapEndpoint && snap.Kind != sketch.SnapCenter {
		return sketch.ConstraintPoint{}, false
	}

	e := s.Entity(snap.Entity)
	if e == nil {
		return sketch.ConstraintPoint{}, false
	}

	bestIndex := -1
	bestDist := math.Inf(1)
	for i := 0; i < e.Geometry.PointCount(); i++ {
		pt, ok := e.Geometry.DefiningPoint(i)
		if !ok {
			continue
		}
		if d := pt.Distance(snap.Position); d < bestDist {
			bestIndex = i
			bestDist = d
		}
	}
	if bestIndex < 0 {
		return sketch.ConstraintPoint{}, false
	}
	return sketch.PointOn(e.ID, bestIndex), true
}
