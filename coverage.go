package poster

import "math"

// antialiasWidth controls the smoothstep transition width in pixels.
const antialiasWidth = 0.7

// capsuleCoverage computes anti-aliased coverage of the pixel center p by a
// capsule: all points within radius of the segment a-b. A zero-length
// segment degenerates to a filled circle.
//
// Returns a value in [0, 1] where 1 means fully inside.
func capsuleCoverage(p, a, b Point, radius float64) float64 {
	return smoothstepCoverage(distanceToSegment(p, a, b) - radius)
}

// distanceToSegment returns the Euclidean distance from p to segment a-b.
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Mul(t)))
}

// smoothstepCoverage converts a signed distance to an anti-aliased coverage
// value using a Hermite smoothstep function.
//
// sdf < -antialiasWidth => 1.0 (fully inside)
// sdf > +antialiasWidth => 0.0 (fully outside)
// Otherwise             => smooth transition
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= antialiasWidth {
		return 0
	}
	if sdf <= -antialiasWidth {
		return 1
	}
	t := (sdf + antialiasWidth) / (2 * antialiasWidth)
	return 1 - (t * t * (3 - 2*t))
}
