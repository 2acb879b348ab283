package engine

import (
	"math"
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"
)

// Scheduler materializes targets for one mode and tier.
type Scheduler struct {
	profile    Profile
	difficulty model.Difficulty
	surface    Surface
	rnd        Rand
	nextID     int
}

// NewScheduler returns a scheduler that draws from rnd.
func NewScheduler(profile Profile, difficulty model.Difficulty, surface Surface, rnd Rand) *Scheduler {
	return &Scheduler{
		profile:    profile,
		difficulty: difficulty,
		surface:    surface,
		rnd:        rnd,
		nextID:     1,
	}
}

// Due reports whether a spawn event should fire at now.
// drawn is the interval drawn at the previous spawn for random-interval modes.
func (s *Scheduler) Due(now, lastSpawn, sessionStart time.Time, drawn time.Duration) bool {
	sample := Curve(s.profile.Mode, s.difficulty, now.Sub(sessionStart))
	interval := sample.Interval
	if sample.Random {
		interval = drawn
	}
	return now.Sub(lastSpawn) >= interval
}

// DrawInterval returns the gap until the next spawn for random-interval modes, else zero.
func (s *Scheduler) DrawInterval() time.Duration {
	if !s.profile.RandomInterval() {
		return 0
	}
	return uniformDuration(s.rnd, s.profile.MinInterval, s.profile.MaxInterval)
}

// Spawn creates the targets of one spawn event.
func (s *Scheduler) Spawn(now time.Time) []*Target {
	count := s.profile.PerSpawn
	if count < 1 {
		count = 1
	}
	out := make([]*Target, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.newTarget(now))
	}
	return out
}

func (s *Scheduler) newTarget(now time.Time) *Target {
	x := uniform(s.rnd, SpawnMargin, s.surface.Width-SpawnMargin)
	y := uniform(s.rnd, SpawnMargin, s.surface.Height-SpawnMargin)
	radius := s.profile.MinRadius
	if s.profile.MaxRadius > s.profile.MinRadius {
		radius = uniform(s.rnd, s.profile.MinRadius, s.profile.MaxRadius)
	}
	if !invariant(radius > 0, "target radius must be positive") {
		radius = 1
	}

	t := &Target{
		ID:        s.nextID,
		Kind:      s.profile.Kind,
		X:         x,
		Y:         y,
		Radius:    radius,
		CreatedAt: now,
		Expires:   s.profile.Expires,
	}
	s.nextID++

	switch t.Kind {
	case KindDrifting:
		t.Heading = s.rnd.Float64() * 2 * math.Pi
		t.Speed = driftStep
		t.VX = math.Cos(t.Heading) * t.Speed
		t.VY = math.Sin(t.Heading) * t.Speed
		t.Rotation = t.Heading
	case KindWandering:
		t.Heading = s.rnd.Float64() * 2 * math.Pi
		t.Speed = s.profile.TargetSpeeds[s.difficulty.Index()]
		t.VX = math.Cos(t.Heading) * t.Speed
		t.VY = math.Sin(t.Heading) * t.Speed
		t.LastWander = now
		t.WanderInterval = uniformDuration(s.rnd, wanderMin, wanderMax)
		t.Rotation = t.Heading
	}
	return t
}
