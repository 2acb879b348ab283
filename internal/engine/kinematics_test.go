package engine

import (
	"math"
	"testing"
	"time"
)

func TestDriftClampsAtWall(t *testing.T) {
	k := NewKinematics(DefaultSurface, centered())
	target := &Target{Kind: KindDrifting, X: 772, Y: 240, Radius: 25, Heading: 0, Speed: driftStep, VX: driftStep}
	k.Advance([]*Target{target}, t0)
	if target.X != 774 {
		t.Fatalf("expected x=774 after one step, got %v", target.X)
	}
	k.Advance([]*Target{target}, at(16))
	if target.X != 775 {
		t.Fatalf("expected x clamped to 775, got %v", target.X)
	}
	k.Advance([]*Target{target}, at(32))
	if target.X != 775 || target.VX <= 0 || target.Heading != 0 {
		t.Fatalf("drifting target must stick to the wall without bouncing: %+v", target)
	}
}

func TestDriftSkipsHitTargets(t *testing.T) {
	k := NewKinematics(DefaultSurface, centered())
	target := &Target{Kind: KindDrifting, X: 100, Y: 100, Radius: 20, Hit: true}
	k.Advance([]*Target{target}, t0)
	if target.X != 100 || target.Y != 100 {
		t.Fatalf("hit targets must not move, got (%v, %v)", target.X, target.Y)
	}
}

func TestWanderReflectsAtWall(t *testing.T) {
	k := NewKinematics(DefaultSurface, centered())
	target := &Target{
		Kind:           KindWandering,
		X:              DefaultSurface.Width - 26,
		Y:              240,
		Radius:         25,
		Speed:          3,
		VX:             3,
		LastWander:     t0,
		WanderInterval: 5 * time.Second,
	}
	k.Advance([]*Target{target}, at(16))
	if target.X != DefaultSurface.Width-25 {
		t.Fatalf("expected x held at the wall, got %v", target.X)
	}
	if target.VX != -3 {
		t.Fatalf("expected vx negated, got %v", target.VX)
	}
	if !approx(target.Heading, math.Pi) {
		t.Fatalf("expected heading recomputed to pi, got %v", target.Heading)
	}
}

func TestWanderBlendsVelocity(t *testing.T) {
	k := NewKinematics(DefaultSurface, centered())
	target := &Target{
		Kind:           KindWandering,
		X:              400,
		Y:              240,
		Radius:         25,
		Speed:          2,
		Heading:        0,
		VY:             2,
		LastWander:     t0,
		WanderInterval: 2 * time.Second,
	}
	k.Advance([]*Target{target}, at(1000))
	if target.VX != 0 || target.VY != 2 {
		t.Fatalf("velocity must not change before the wander interval: (%v, %v)", target.VX, target.VY)
	}
	k.Advance([]*Target{target}, at(2000))
	if !approx(target.Heading, 0) {
		t.Fatalf("centered draw should leave the heading unchanged, got %v", target.Heading)
	}
	if !approx(target.VX, 0.4) || !approx(target.VY, 1.6) {
		t.Fatalf("expected 80/20 blend (0.4, 1.6), got (%v, %v)", target.VX, target.VY)
	}
	if !target.LastWander.Equal(at(2000)) || target.WanderInterval != 3500*time.Millisecond {
		t.Fatalf("wander clock not rearmed: %v %v", target.LastWander, target.WanderInterval)
	}
}

func TestWanderTurnIsBounded(t *testing.T) {
	for _, draw := range []float64{0, 0.999999} {
		k := NewKinematics(DefaultSurface, newFixed(draw))
		target := &Target{Kind: KindWandering, X: 400, Y: 240, Radius: 25, Speed: 2, VX: 2, LastWander: t0}
		k.Advance([]*Target{target}, at(16))
		if math.Abs(target.Heading) > math.Pi/8+1e-9 {
			t.Fatalf("heading turned by %v, more than pi/8", target.Heading)
		}
	}
}

func TestEntranceAnimation(t *testing.T) {
	k := NewKinematics(DefaultSurface, centered())
	target := &Target{Kind: KindStatic, X: 100, Y: 100, Radius: 20}
	for i := 0; i < 12; i++ {
		k.Advance([]*Target{target}, at(i*16))
	}
	if target.Scale != 1 {
		t.Fatalf("expected scale to saturate at 1, got %v", target.Scale)
	}
	if target.X != 100 || target.Y != 100 {
		t.Fatalf("static targets must not move")
	}
}

type fixed float64

func newFixed(v float64) Rand { return fixed(v) }

func (f fixed) Float64() float64 { return float64(f) }
