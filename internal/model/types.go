// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownMode is returned when a mode name cannot be parsed.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnknownDifficulty is returned when a difficulty name cannot be parsed.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrUnknownHitPolicy is returned when a hit policy name cannot be parsed.
	ErrUnknownHitPolicy = errors.New("unknown hit policy")
)

// Mode selects the training rules for a session.
type Mode string

const (
	ModeChallenge  Mode = "challenge"
	ModePrecision  Mode = "precision"
	ModeReflex     Mode = "reflex"
	ModeMoving     Mode = "moving"
	ModeTracking   Mode = "tracking"
	ModeDoubleshot Mode = "doubleshot"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeChallenge, ModePrecision, ModeReflex, ModeMoving, ModeTracking, ModeDoubleshot}

// ParseMode resolves a case-insensitive mode name.
func ParseMode(s string) (Mode, error) {
	name := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range Modes {
		if m == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Difficulty is the tier that selects base speeds.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the tiers from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty resolves a case-insensitive difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	name := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range Difficulties {
		if d == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownDifficulty, s)
}

// Index returns 0, 1 or 2 for easy, medium and hard. Unknown tiers map to medium.
func (d Difficulty) Index() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyHard:
		return 2
	default:
		return 1
	}
}

// Phase is the session lifecycle state.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// HitPolicy decides how many overlapping targets a single click may hit.
type HitPolicy string

const (
	// HitAll marks every unhit target under the cursor.
	HitAll HitPolicy = "all"
	// HitNearest marks only the unhit target whose center is closest to the cursor.
	HitNearest HitPolicy = "nearest"
)

// ParseHitPolicy resolves a hit policy name. Empty means HitAll.
func ParseHitPolicy(s string) (HitPolicy, error) {
	switch HitPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", HitAll:
		return HitAll, nil
	case HitNearest:
		return HitNearest, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownHitPolicy, s)
}

// Config defines practice settings.
type Config struct {
	Mode        Mode
	Difficulty  Difficulty
	Seed        int64
	HitPolicy   HitPolicy
	Width       float64
	Height      float64
	CurveWindow int
	Sound       bool
	Crosshair   Crosshair
}

// Crosshair is the cosmetic cursor configuration. It never affects gameplay.
type Crosshair struct {
	Preset    string
	Color     string
	Size      int
	Gap       int
	Thickness int
	Dot       bool
}

// SessionStats captures the running statistics of one session.
type SessionStats struct {
	Hits                int             `json:"hits"`
	TotalShots          int             `json:"totalShots"`
	Misses              int             `json:"misses"`
	Accuracy            int             `json:"accuracy"`
	AverageReactionTime time.Duration   `json:"averageReactionTime"`
	LastHitReactionTime time.Duration   `json:"lastHitReactionTime"`
	ConsecutiveHits     int             `json:"consecutiveHits"`
	BestConsecutiveHits int             `json:"bestConsecutiveHits"`
	CurrentSpawnRate    float64         `json:"currentSpawnRate"`
	Elapsed             time.Duration   `json:"elapsed"`
	ReactionTimes       []time.Duration `json:"reactionTimes,omitempty"`
}

// Clone returns a deep copy safe to hand to the renderer.
func (s SessionStats) Clone() SessionStats {
	out := s
	if s.ReactionTimes != nil {
		out.ReactionTimes = append([]time.Duration(nil), s.ReactionTimes...)
	}
	return out
}
