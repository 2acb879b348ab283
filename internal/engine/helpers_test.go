package engine

import (
	"math"
	"time"

	"github.com/verte-zerg/tuiaim/internal/generator"
	"github.com/verte-zerg/tuiaim/internal/model"
)

var t0 = time.Unix(1_700_000_000, 0).UTC()

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func centered() Rand {
	return generator.NewSequence(0.5)
}

func startSession(mode model.Mode, diff model.Difficulty, rnd Rand) *Session {
	s := New(mode, diff, Options{Surface: DefaultSurface, Rand: rnd})
	s.Start(mode, diff, t0)
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
