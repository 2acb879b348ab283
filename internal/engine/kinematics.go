package engine

import (
	"math"
	"time"
)

// Kinematics advances moving targets by one tick.
type Kinematics struct {
	surface Surface
	rnd     Rand
}

// NewKinematics returns a kinematics stepper bounded by surface.
func NewKinematics(surface Surface, rnd Rand) Kinematics {
	return Kinematics{surface: surface, rnd: rnd}
}

// Advance moves every unhit target according to its kind and steps the entrance animation.
func (k Kinematics) Advance(targets []*Target, now time.Time) {
	for _, t := range targets {
		t.animate()
		if t.Hit {
			continue
		}
		switch t.Kind {
		case KindDrifting:
			k.drift(t)
		case KindWandering:
			k.wander(t, now)
		}
	}
}

// drift moves along the fixed heading and clamps to the walls without bouncing.
func (k Kinematics) drift(t *Target) {
	t.X += math.Cos(t.Heading) * driftStep
	t.Y += math.Sin(t.Heading) * driftStep
	t.X = clamp(t.X, t.Radius, k.surface.Width-t.Radius)
	t.Y = clamp(t.Y, t.Radius, k.surface.Height-t.Radius)
}

// wander perturbs the heading every WanderInterval, blends velocity toward it,
// and reflects off the walls.
func (k Kinematics) wander(t *Target, now time.Time) {
	if now.Sub(t.LastWander) >= t.WanderInterval {
		t.Heading += uniform(k.rnd, -wanderTurn, wanderTurn)
		desiredX := math.Cos(t.Heading) * t.Speed
		desiredY := math.Sin(t.Heading) * t.Speed
		t.VX = t.VX*(1-wanderBlend) + desiredX*wanderBlend
		t.VY = t.VY*(1-wanderBlend) + desiredY*wanderBlend
		t.LastWander = now
		t.WanderInterval = uniformDuration(k.rnd, wanderMin, wanderMax)
	}

	t.X += t.VX
	t.Y += t.VY

	reflected := false
	if t.X-t.Radius < 0 {
		t.X = t.Radius
		if t.VX < 0 {
			t.VX = -t.VX
			reflected = true
		}
	} else if t.X+t.Radius > k.surface.Width {
		t.X = k.surface.Width - t.Radius
		if t.VX > 0 {
			t.VX = -t.VX
			reflected = true
		}
	}
	if t.Y-t.Radius < 0 {
		t.Y = t.Radius
		if t.VY < 0 {
			t.VY = -t.VY
			reflected = true
		}
	} else if t.Y+t.Radius > k.surface.Height {
		t.Y = k.surface.Height - t.Radius
		if t.VY > 0 {
			t.VY = -t.VY
			reflected = true
		}
	}
	if reflected {
		t.Heading = math.Atan2(t.VY, t.VX)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
