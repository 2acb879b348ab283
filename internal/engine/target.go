package engine

import (
	"math"
	"time"
)

// Kind tags the motion model a target follows.
type Kind int

const (
	// KindStatic targets stay where they spawned.
	KindStatic Kind = iota
	// KindDrifting targets move in a straight line and stick to the walls.
	KindDrifting
	// KindWandering targets follow a smoothed random walk and bounce off the walls.
	KindWandering
)

func (k Kind) String() string {
	switch k {
	case KindDrifting:
		return "drifting"
	case KindWandering:
		return "wandering"
	default:
		return "static"
	}
}

// Target is a single clickable circle.
type Target struct {
	ID        int       `json:"id"`
	Kind      Kind      `json:"kind"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Radius    float64   `json:"radius"`
	CreatedAt time.Time `json:"createdAt"`
	Hit       bool      `json:"hit"`
	HitAt     time.Time `json:"hitAt"`
	// Expires is false for targets that are replaced rather than aged out.
	Expires bool `json:"expires"`

	VX             float64       `json:"vx"`
	VY             float64       `json:"vy"`
	Heading        float64       `json:"heading"`
	Speed          float64       `json:"speed"`
	LastWander     time.Time     `json:"lastWander"`
	WanderInterval time.Duration `json:"wanderInterval"`

	// Scale and Rotation drive the entrance animation only.
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
}

// Age returns how long the target has existed at now.
func (t *Target) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}

// Expired reports whether the target has outlived TargetLifetime.
// Targets with Expires unset never expire.
func (t *Target) Expired(now time.Time) bool {
	return t.Expires && t.Age(now) > TargetLifetime
}

// Contains reports whether (x, y) lies within the target's circle, edge included.
func (t *Target) Contains(x, y float64) bool {
	return math.Hypot(x-t.X, y-t.Y) <= t.Radius
}

// Distance returns the distance from (x, y) to the target center.
func (t *Target) Distance(x, y float64) float64 {
	return math.Hypot(x-t.X, y-t.Y)
}

func (t *Target) markHit(now time.Time) {
	t.Hit = true
	t.HitAt = now
}

func (t *Target) animate() {
	if t.Scale < 1 {
		t.Scale = math.Min(1, t.Scale+entranceStep)
	}
	t.Rotation += spinStep
}
