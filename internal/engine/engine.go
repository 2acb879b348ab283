// Package engine implements the tick-driven aim training simulation: target
// lifecycle, spawn scheduling, kinematics, hit resolution and the session
// state machine. It never reads a clock; every entry point takes the host's now.
package engine

import (
	"math"
	"time"
)

const (
	// TargetLifetime is how long an unhit target lives before it expires.
	TargetLifetime = 2000 * time.Millisecond
	// LifeCooldown is the minimum spacing between two expiry life deductions.
	LifeCooldown = 1000 * time.Millisecond
	// HitLinger is how long a hit target stays in the set for its hit visual.
	HitLinger = 150 * time.Millisecond
	// SpawnMargin keeps spawn positions away from the surface edges.
	SpawnMargin = 40.0

	driftStep      = 2.0
	wanderTurn     = math.Pi / 8
	wanderBlend    = 0.2
	wanderMin      = 2000 * time.Millisecond
	wanderMax      = 5000 * time.Millisecond
	entranceStep   = 0.1
	spinStep       = 0.02
	growthFactor   = 0.1
	intervalFactor = 500.0
)

// Rand is the random source behind every spawn and wander draw.
// *rand.Rand and *generator.Generator satisfy it.
type Rand interface {
	Float64() float64
}

// Surface is the playable area in surface units. Origin is the top-left corner.
type Surface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultSurface matches an 800x480 canvas.
var DefaultSurface = Surface{Width: 800, Height: 480}

func uniform(rnd Rand, lo, hi float64) float64 {
	return lo + rnd.Float64()*(hi-lo)
}

func uniformDuration(rnd Rand, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(rnd.Float64()*float64(hi-lo))
}

// invariant reports whether ok holds. Debug builds panic on a violation so the
// fault surfaces at its source; release builds let the caller clamp.
func invariant(ok bool, msg string) bool {
	if ok {
		return true
	}
	if debugInvariants {
		panic("engine: invariant violated: " + msg)
	}
	return false
}
