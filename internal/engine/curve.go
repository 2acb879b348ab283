package engine

import (
	"math"
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"
)

// CurveSample is the difficulty curve evaluated at one instant.
type CurveSample struct {
	// Speed is base speed plus growth. For random-interval modes it is display only.
	Speed float64
	// Interval is the spawn gap. Zero when Random is set.
	Interval time.Duration
	// Random means the gap is drawn per spawn event from [MinInterval, MaxInterval].
	Random      bool
	MinInterval time.Duration
	MaxInterval time.Duration
}

// Curve maps mode, tier and elapsed session time to the current spawn rate.
func Curve(mode model.Mode, difficulty model.Difficulty, elapsed time.Duration) CurveSample {
	p := ProfileFor(mode)
	speed := p.BaseSpeeds[difficulty.Index()]
	if p.RandomInterval() {
		return CurveSample{
			Speed:       speed,
			Random:      true,
			MinInterval: p.MinInterval,
			MaxInterval: p.MaxInterval,
		}
	}
	if p.Growth {
		speed += Growth(elapsed)
	}
	return CurveSample{
		Speed:    speed,
		Interval: time.Duration(intervalFactor / speed * float64(time.Millisecond)),
	}
}

// Growth is the logarithmic speed increase after elapsed session time.
func Growth(elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	return math.Log(elapsed.Seconds()+1) * growthFactor
}
