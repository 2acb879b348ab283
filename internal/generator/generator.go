// Package generator provides the seedable random source behind target spawning.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces the random draws for spawn positions, radii, intervals and wander.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator that replays the same sequence for the same seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0, 1).
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}

// Sequence replays a fixed list of draws, cycling when exhausted. Useful for scripted sessions.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a Sequence over values. An empty list always yields 0.5.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted draw.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
