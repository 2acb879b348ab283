package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"
)

// Snapshot is an immutable view of a session. It carries everything needed to
// resume the simulation, and is what the renderer draws from.
type Snapshot struct {
	Mode         model.Mode         `json:"mode"`
	Difficulty   model.Difficulty   `json:"difficulty"`
	Phase        model.Phase        `json:"phase"`
	HitPolicy    model.HitPolicy    `json:"hitPolicy"`
	Surface      Surface            `json:"surface"`
	Lives        int                `json:"lives"`
	InitialLives int                `json:"initialLives"`
	Targets      []Target           `json:"targets"`
	Stats        model.SessionStats `json:"stats"`

	SessionStart      time.Time     `json:"sessionStart"`
	LastSpawn         time.Time     `json:"lastSpawn"`
	LastLifeDeduction time.Time     `json:"lastLifeDeduction"`
	NextInterval      time.Duration `json:"nextInterval"`
	NextID            int           `json:"nextId"`
	TakenAt           time.Time     `json:"takenAt"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	targets := make([]Target, len(s.targets))
	for i, t := range s.targets {
		targets[i] = *t
	}
	nextID := 1
	if s.scheduler != nil {
		nextID = s.scheduler.nextID
	}
	return Snapshot{
		Mode:              s.mode,
		Difficulty:        s.difficulty,
		Phase:             s.phase,
		HitPolicy:         s.opts.HitPolicy,
		Surface:           s.opts.Surface,
		Lives:             s.lives,
		InitialLives:      s.initialLives,
		Targets:           targets,
		Stats:             s.stats.Clone(),
		SessionStart:      s.sessionStart,
		LastSpawn:         s.lastSpawn,
		LastLifeDeduction: s.lastLifeDeduction,
		NextInterval:      s.nextInterval,
		NextID:            nextID,
		TakenAt:           s.now,
	}
}

// Restore rebuilds a session from snap. All stored timestamps are shifted by
// now - snap.TakenAt so ages and cooldowns continue from where they stopped.
// Surface and HitPolicy come from the snapshot; opts supplies Rand and Listener.
func Restore(snap Snapshot, opts Options, now time.Time) (*Session, error) {
	if _, err := model.ParseMode(string(snap.Mode)); err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	if _, err := model.ParseDifficulty(string(snap.Difficulty)); err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	if snap.Surface.Width <= 2*SpawnMargin || snap.Surface.Height <= 2*SpawnMargin {
		return nil, fmt.Errorf("restore snapshot: surface %.0fx%.0f too small", snap.Surface.Width, snap.Surface.Height)
	}
	shift := now.Sub(snap.TakenAt)
	rebase := func(t time.Time) time.Time {
		if t.IsZero() {
			return t
		}
		return t.Add(shift)
	}

	opts.Surface = snap.Surface
	opts.HitPolicy = snap.HitPolicy
	s := New(snap.Mode, snap.Difficulty, opts)
	s.phase = snap.Phase
	s.lives = snap.Lives
	s.initialLives = snap.InitialLives
	s.stats = snap.Stats.Clone()
	s.sessionStart = rebase(snap.SessionStart)
	s.lastSpawn = rebase(snap.LastSpawn)
	s.lastLifeDeduction = rebase(snap.LastLifeDeduction)
	s.nextInterval = snap.NextInterval
	s.now = now

	s.targets = make([]*Target, len(snap.Targets))
	for i := range snap.Targets {
		t := snap.Targets[i]
		t.CreatedAt = rebase(t.CreatedAt)
		t.HitAt = rebase(t.HitAt)
		t.LastWander = rebase(t.LastWander)
		s.targets[i] = &t
	}

	s.scheduler = NewScheduler(s.profile, s.difficulty, s.opts.Surface, s.opts.Rand)
	if snap.NextID > 0 {
		s.scheduler.nextID = snap.NextID
	}
	s.kinematics = NewKinematics(s.opts.Surface, s.opts.Rand)
	s.resolver = NewResolver(s.profile, s.opts.HitPolicy)
	s.checkInvariants()
	return s, nil
}

// EncodeSnapshot serializes snap as JSON.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
