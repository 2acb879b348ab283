package engine

import (
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"
)

// MissPolicy is what a click that hits nothing costs.
type MissPolicy int

const (
	// MissCostsLife removes one life immediately.
	MissCostsLife MissPolicy = iota
	// MissResetsCombo clears the combo counter but keeps lives.
	MissResetsCombo
	// MissFree has no effect beyond counting the shot.
	MissFree
)

// Profile is the per-mode rule set consumed by the scheduler, resolver and session.
type Profile struct {
	Mode model.Mode
	Kind Kind

	MinRadius float64
	MaxRadius float64

	// BaseSpeeds are indexed by model.Difficulty.Index.
	BaseSpeeds [3]float64
	// Growth adds ln(elapsedSeconds+1)*0.1 to the base speed.
	Growth bool
	// MinInterval and MaxInterval, when set, replace the curve with a uniform draw.
	MinInterval time.Duration
	MaxInterval time.Duration

	PerSpawn int
	// Replace discards all live targets on every spawn event.
	Replace bool
	// TargetSpeeds set the per-tick speed of wandering targets, by difficulty.
	TargetSpeeds [3]float64
	Expires      bool

	InitialLives int
	Miss         MissPolicy
	Combo        bool
	// HitQuota ends the session once hits reach it. Zero means no quota.
	HitQuota int
}

// RandomInterval reports whether spawn intervals are drawn rather than curved.
func (p Profile) RandomInterval() bool {
	return p.MaxInterval > 0
}

var standardSpeeds = [3]float64{0.50, 1.00, 1.50}

var profiles = map[model.Mode]Profile{
	model.ModeChallenge: {
		Mode:         model.ModeChallenge,
		Kind:         KindStatic,
		MinRadius:    15,
		MaxRadius:    35,
		BaseSpeeds:   standardSpeeds,
		Growth:       true,
		PerSpawn:     1,
		Expires:      true,
		InitialLives: 3,
		Miss:         MissCostsLife,
	},
	model.ModePrecision: {
		Mode:         model.ModePrecision,
		Kind:         KindStatic,
		MinRadius:    12,
		MaxRadius:    12,
		BaseSpeeds:   standardSpeeds,
		Growth:       true,
		PerSpawn:     1,
		Expires:      true,
		InitialLives: 3,
		Miss:         MissResetsCombo,
		Combo:        true,
	},
	model.ModeReflex: {
		Mode:         model.ModeReflex,
		Kind:         KindStatic,
		MinRadius:    20,
		MaxRadius:    35,
		BaseSpeeds:   [3]float64{0.20, 0.35, 0.50},
		MinInterval:  1000 * time.Millisecond,
		MaxInterval:  3000 * time.Millisecond,
		PerSpawn:     1,
		Expires:      true,
		InitialLives: 1,
		Miss:         MissFree,
		HitQuota:     8,
	},
	model.ModeMoving: {
		Mode:         model.ModeMoving,
		Kind:         KindDrifting,
		MinRadius:    15,
		MaxRadius:    35,
		BaseSpeeds:   standardSpeeds,
		Growth:       true,
		PerSpawn:     1,
		Expires:      true,
		InitialLives: 3,
		Miss:         MissCostsLife,
	},
	model.ModeTracking: {
		Mode:         model.ModeTracking,
		Kind:         KindWandering,
		MinRadius:    25,
		MaxRadius:    25,
		BaseSpeeds:   standardSpeeds,
		Growth:       true,
		PerSpawn:     1,
		Replace:      true,
		TargetSpeeds: [3]float64{1.5, 2.5, 3.5},
		InitialLives: 5,
		Miss:         MissCostsLife,
	},
	model.ModeDoubleshot: {
		Mode:         model.ModeDoubleshot,
		Kind:         KindStatic,
		MinRadius:    15,
		MaxRadius:    35,
		BaseSpeeds:   [3]float64{0.25, 0.50, 0.75},
		Growth:       true,
		PerSpawn:     2,
		Expires:      true,
		InitialLives: 3,
		Miss:         MissCostsLife,
	},
}

// ProfileFor returns the rule set for mode. Unknown modes fall back to challenge.
func ProfileFor(mode model.Mode) Profile {
	if p, ok := profiles[mode]; ok {
		return p
	}
	return profiles[model.ModeChallenge]
}

// InitialLives returns the starting lives for mode.
func InitialLives(mode model.Mode) int {
	return ProfileFor(mode).InitialLives
}
