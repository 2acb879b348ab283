package engine

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/tuiaim/internal/generator"
	"github.com/verte-zerg/tuiaim/internal/model"
)

func TestStartSpawnsFirstTarget(t *testing.T) {
	s := New(model.ModeChallenge, model.DifficultyMedium, Options{Rand: centered()})
	if s.Phase() != model.PhaseMenu {
		t.Fatalf("new session should wait in the menu")
	}
	if !s.Start(model.ModeChallenge, model.DifficultyMedium, t0) {
		t.Fatalf("start from menu should succeed")
	}
	snap := s.Snapshot()
	if snap.Phase != model.PhasePlaying || len(snap.Targets) != 1 || snap.Lives != 3 {
		t.Fatalf("unexpected state after start: %+v", snap)
	}
	if snap.Stats.CurrentSpawnRate != 1.0 {
		t.Fatalf("expected display speed 1.00, got %v", snap.Stats.CurrentSpawnRate)
	}
	if s.Start(model.ModeReflex, model.DifficultyHard, at(10)) {
		t.Fatalf("start while playing must be a no-op")
	}
	if s.Mode() != model.ModeChallenge || s.Difficulty() != model.DifficultyMedium {
		t.Fatalf("a rejected start must not change mode or difficulty")
	}
}

func TestScenarioChallengeCenterHit(t *testing.T) {
	s := startSession(model.ModeChallenge, model.DifficultyMedium, centered())
	target := s.Snapshot().Targets[0]
	out := s.Click(target.X, target.Y, at(500))
	if out.HitCount != 1 {
		t.Fatalf("expected a hit, got %d", out.HitCount)
	}
	st := out.Stats
	if st.Hits != 1 || st.TotalShots != 1 || st.Accuracy != 100 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.LastHitReactionTime != 500*time.Millisecond || st.AverageReactionTime != 500*time.Millisecond {
		t.Fatalf("unexpected reaction time: %v", st.LastHitReactionTime)
	}
}

func TestScenarioReflexExpiryEndsSession(t *testing.T) {
	s := startSession(model.ModeReflex, model.DifficultyMedium, centered())
	if s.Lives() != 1 {
		t.Fatalf("reflex starts with 1 life, got %d", s.Lives())
	}
	s.Step(at(2000))
	if s.Phase() != model.PhasePlaying {
		t.Fatalf("a target aged exactly 2000ms has not expired yet")
	}
	snap := s.Step(at(2001))
	if snap.Lives != 0 || snap.Phase != model.PhaseFinished {
		t.Fatalf("expected session over after expiry, got lives=%d phase=%s", snap.Lives, snap.Phase)
	}
}

func TestScenarioReflexQuota(t *testing.T) {
	s := startSession(model.ModeReflex, model.DifficultyMedium, centered())
	for i := 0; i < 8; i++ {
		if i > 0 {
			snap := s.Step(at(i * 2000))
			if snap.Phase != model.PhasePlaying {
				t.Fatalf("session ended early at round %d", i)
			}
		}
		var live *Target
		for _, target := range s.Snapshot().Targets {
			if !target.Hit {
				target := target
				live = &target
			}
		}
		if live == nil {
			t.Fatalf("round %d: no live target", i)
		}
		out := s.Click(live.X, live.Y, at(i*2000+100))
		if out.HitCount != 1 {
			t.Fatalf("round %d: expected a hit, got %d", i, out.HitCount)
		}
	}
	if s.Phase() != model.PhaseFinished {
		t.Fatalf("reflex should end at 8 hits")
	}
	st := s.Stats()
	if st.Hits != 8 || s.Lives() != 1 {
		t.Fatalf("expected 8 hits with 1 life left, got hits=%d lives=%d", st.Hits, s.Lives())
	}
	if out := s.Click(400, 240, at(20000)); out.HitCount != 0 || out.Stats.TotalShots != 8 {
		t.Fatalf("clicks after finishing must be ignored: %+v", out)
	}
}

func TestScenarioDoubleshotPairs(t *testing.T) {
	s := startSession(model.ModeDoubleshot, model.DifficultyEasy, centered())
	if got := len(s.Snapshot().Targets); got != 2 {
		t.Fatalf("expected 2 targets at start, got %d", got)
	}
	prev := 2
	for ms := 16; ms < 1990; ms += 16 {
		n := len(s.Step(at(ms)).Targets)
		if n != prev && n != prev+2 {
			t.Fatalf("spawn events must add exactly 2 targets: %d -> %d", prev, n)
		}
		prev = n
	}
	if prev != 4 {
		t.Fatalf("expected one more pair within 2s, got %d targets", prev)
	}
}

func TestScenarioMovingClampsAtRightEdge(t *testing.T) {
	s := startSession(model.ModeMoving, model.DifficultyMedium, generator.NewSequence(0.999, 0.5, 0.5, 0))
	first := s.Snapshot().Targets[0]
	if first.Heading != 0 || first.Radius != 25 {
		t.Fatalf("unexpected spawn: %+v", first)
	}
	edge := DefaultSurface.Width - first.Radius
	reached := false
	for ms := 16; ms <= 320; ms += 16 {
		var cur Target
		for _, target := range s.Step(at(ms)).Targets {
			if target.ID == first.ID {
				cur = target
			}
		}
		if cur.X > edge {
			t.Fatalf("x=%v exceeded the wall at %v", cur.X, edge)
		}
		if cur.VX <= 0 || cur.Heading != 0 {
			t.Fatalf("moving targets must not bounce: %+v", cur)
		}
		if cur.X == edge {
			reached = true
		}
	}
	if !reached {
		t.Fatalf("target never reached the wall")
	}
}

func TestExpiryDeductsOncePerCooldown(t *testing.T) {
	s := startSession(model.ModeDoubleshot, model.DifficultyEasy, centered())
	s.Step(at(2001))
	if s.Lives() != 2 {
		t.Fatalf("two simultaneous expiries must cost one life, got lives=%d", s.Lives())
	}
}

func TestExpiryCooldownWindow(t *testing.T) {
	s := startSession(model.ModeChallenge, model.DifficultyHard, centered())
	ms := 16
	for ; ms <= 3008; ms += 16 {
		s.Step(at(ms))
	}
	if s.Lives() != 2 {
		t.Fatalf("expiries inside one cooldown window must cost one life, got %d", s.Lives())
	}
	for _, target := range s.Snapshot().Targets {
		if !target.Hit && target.Expired(at(3008)) {
			t.Fatalf("expired targets must be removed even without a deduction")
		}
	}
	for ; ms <= 3500; ms += 16 {
		s.Step(at(ms))
	}
	if s.Lives() != 1 {
		t.Fatalf("a later expiry after the cooldown should cost another life, got %d", s.Lives())
	}
}

func TestMissPolicies(t *testing.T) {
	cases := []struct {
		mode      model.Mode
		wantLives int
	}{
		{model.ModeChallenge, 2},
		{model.ModeMoving, 2},
		{model.ModeDoubleshot, 2},
		{model.ModeTracking, 4},
		{model.ModePrecision, 3},
		{model.ModeReflex, 1},
	}
	for _, tc := range cases {
		s := startSession(tc.mode, model.DifficultyMedium, centered())
		out := s.Click(1, 1, at(50))
		if out.HitCount != 0 {
			t.Fatalf("%s: corner click should miss", tc.mode)
		}
		if s.Lives() != tc.wantLives {
			t.Fatalf("%s: lives after miss = %d, want %d", tc.mode, s.Lives(), tc.wantLives)
		}
		if s.Phase() != model.PhasePlaying {
			t.Fatalf("%s: a single miss must not end the session", tc.mode)
		}
		if out.Stats.Misses != 1 || out.Stats.TotalShots != 1 || out.Stats.Accuracy != 0 {
			t.Fatalf("%s: unexpected stats %+v", tc.mode, out.Stats)
		}
	}
}

func TestMissesEndChallenge(t *testing.T) {
	s := startSession(model.ModeChallenge, model.DifficultyMedium, centered())
	for i := 0; i < 3; i++ {
		s.Click(1, 1, at(10+i))
	}
	if s.Lives() != 0 || s.Phase() != model.PhaseFinished {
		t.Fatalf("three misses should end challenge, got lives=%d phase=%s", s.Lives(), s.Phase())
	}
}

func TestPrecisionMissResetsComboOnly(t *testing.T) {
	s := startSession(model.ModePrecision, model.DifficultyMedium, centered())
	target := s.Snapshot().Targets[0]
	s.Click(target.X, target.Y, at(100))
	out := s.Click(1, 1, at(200))
	if out.Stats.ConsecutiveHits != 0 || out.Stats.BestConsecutiveHits != 1 {
		t.Fatalf("unexpected combo after miss: %+v", out.Stats)
	}
	if s.Lives() != 3 {
		t.Fatalf("precision misses must not cost lives")
	}
}

func TestTrackingReplacesAndNeverExpires(t *testing.T) {
	s := startSession(model.ModeTracking, model.DifficultyMedium, centered())
	first := s.Snapshot().Targets[0]
	if first.Expired(first.CreatedAt.Add(10 * time.Second)) {
		t.Fatalf("tracking targets must never expire")
	}
	if s.Lives() != 5 {
		t.Fatalf("tracking starts with 5 lives, got %d", s.Lives())
	}
	var snap Snapshot
	for ms := 16; ms <= 10000; ms += 16 {
		snap = s.Step(at(ms))
		if len(snap.Targets) != 1 {
			t.Fatalf("tracking must keep exactly one target, got %d at %dms", len(snap.Targets), ms)
		}
	}
	if snap.Lives != 5 || snap.Phase != model.PhasePlaying {
		t.Fatalf("tracking must not lose lives to time: %+v", snap)
	}
	if snap.Targets[0].ID == first.ID {
		t.Fatalf("tracking target should have been replaced")
	}
}

func TestStopHaltsTicks(t *testing.T) {
	s := startSession(model.ModeChallenge, model.DifficultyMedium, centered())
	s.Step(at(100))
	s.Stop()
	if s.Phase() != model.PhaseFinished {
		t.Fatalf("stop should finish the session")
	}
	before := s.Snapshot()
	after := s.Step(at(5000))
	if after.Stats.Elapsed != before.Stats.Elapsed || len(after.Targets) != len(before.Targets) || after.Lives != before.Lives {
		t.Fatalf("ticks after stop must not mutate state")
	}
	if out := s.Click(400, 240, at(5001)); out.Stats.TotalShots != 0 {
		t.Fatalf("clicks after stop must be ignored")
	}
}

func TestSetDifficultyOnlyOutsidePlay(t *testing.T) {
	s := New(model.ModeChallenge, model.DifficultyMedium, Options{Rand: centered()})
	if !s.SetDifficulty(model.DifficultyHard) {
		t.Fatalf("difficulty should be editable in the menu")
	}
	s.Start(model.ModeChallenge, s.Difficulty(), t0)
	if s.SetDifficulty(model.DifficultyEasy) || s.Difficulty() != model.DifficultyHard {
		t.Fatalf("difficulty must be locked while playing")
	}
	s.Stop()
	if !s.SetDifficulty(model.DifficultyEasy) {
		t.Fatalf("difficulty should be editable after finishing")
	}
	if !s.Start(model.ModeChallenge, s.Difficulty(), at(10000)) {
		t.Fatalf("restart from finished should succeed")
	}
	snap := s.Snapshot()
	if snap.Stats.TotalShots != 0 || snap.Lives != 3 || len(snap.Targets) != 1 {
		t.Fatalf("restart must reset the session: %+v", snap)
	}
}

func TestListenerEvents(t *testing.T) {
	var kinds []EventKind
	s := New(model.ModeReflex, model.DifficultyMedium, Options{
		Rand:     centered(),
		Listener: ListenerFunc(func(e Event) { kinds = append(kinds, e.Kind) }),
	})
	s.Start(model.ModeReflex, model.DifficultyMedium, t0)
	s.Click(400, 240, at(100))
	s.Click(1, 1, at(200))
	s.Step(at(2000))
	s.Step(at(4001))
	want := []EventKind{EventHit, EventMiss, EventLifeLost, EventFinished}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

func TestPanickingListenerIsContained(t *testing.T) {
	s := New(model.ModeChallenge, model.DifficultyMedium, Options{
		Rand:     centered(),
		Listener: ListenerFunc(func(Event) { panic("speaker unplugged") }),
	})
	s.Start(model.ModeChallenge, model.DifficultyMedium, t0)
	out := s.Click(400, 240, at(100))
	if out.HitCount != 1 || out.Stats.Hits != 1 {
		t.Fatalf("listener failure must not affect the hit: %+v", out)
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for _, mode := range model.Modes {
		for seed := int64(1); seed <= 3; seed++ {
			s := startSession(mode, model.DifficultyHard, generator.NewSeeded(seed))
			clicks := generator.NewSeeded(seed * 100)
			initial := InitialLives(mode)
			prevHits, prevShots := 0, 0
			for ms := 16; ms <= 60000 && s.Phase() == model.PhasePlaying; ms += 16 {
				s.Step(at(ms))
				if clicks.Float64() < 0.05 {
					s.Click(clicks.Float64()*DefaultSurface.Width, clicks.Float64()*DefaultSurface.Height, at(ms+1))
				}
				st := s.Stats()
				if s.Lives() < 0 || s.Lives() > initial {
					t.Fatalf("%s: lives %d out of range", mode, s.Lives())
				}
				if st.Hits > st.TotalShots {
					t.Fatalf("%s: hits %d exceed shots %d", mode, st.Hits, st.TotalShots)
				}
				if st.Hits < prevHits || st.TotalShots < prevShots {
					t.Fatalf("%s: counters decreased", mode)
				}
				wantAcc := 0
				if st.TotalShots > 0 {
					wantAcc = int(math.Round(float64(st.Hits) / float64(st.TotalShots) * 100))
				}
				if st.Accuracy != wantAcc {
					t.Fatalf("%s: accuracy %d, want %d", mode, st.Accuracy, wantAcc)
				}
				prevHits, prevShots = st.Hits, st.TotalShots
			}
		}
	}
}
