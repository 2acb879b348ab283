package engine

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"
)

// Options configures a Session. A nil Rand falls back to a time-seeded source;
// a nil Listener is allowed.
type Options struct {
	Surface   Surface
	Rand      Rand
	HitPolicy model.HitPolicy
	Listener  Listener
}

// HitOutcome is the result of one click.
type HitOutcome struct {
	HitCount int
	Stats    model.SessionStats
}

// Session is the top-level state machine. It exclusively owns its targets,
// lives and statistics; callers must serialize Start, Step, Click and Stop.
type Session struct {
	opts       Options
	mode       model.Mode
	difficulty model.Difficulty
	profile    Profile
	phase      model.Phase

	lives        int
	initialLives int
	targets      []*Target
	stats        model.SessionStats

	sessionStart      time.Time
	lastSpawn         time.Time
	lastLifeDeduction time.Time
	nextInterval      time.Duration
	now               time.Time

	scheduler  *Scheduler
	kinematics Kinematics
	resolver   Resolver
}

// New returns a session in the menu phase, preset to mode and difficulty.
func New(mode model.Mode, difficulty model.Difficulty, opts Options) *Session {
	if opts.Surface.Width <= 0 || opts.Surface.Height <= 0 {
		opts.Surface = DefaultSurface
	}
	if opts.HitPolicy == "" {
		opts.HitPolicy = model.HitAll
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		opts:       opts,
		mode:       mode,
		difficulty: difficulty,
		profile:    ProfileFor(mode),
		phase:      model.PhaseMenu,
	}
	s.lives = s.profile.InitialLives
	s.initialLives = s.profile.InitialLives
	return s
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() model.Phase { return s.phase }

// Mode returns the mode of the current or last session.
func (s *Session) Mode() model.Mode { return s.mode }

// Difficulty returns the tier used by the next or current session.
func (s *Session) Difficulty() model.Difficulty { return s.difficulty }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Stats returns a copy of the running statistics.
func (s *Session) Stats() model.SessionStats { return s.stats.Clone() }

// SetDifficulty changes the tier. It is ignored while playing.
func (s *Session) SetDifficulty(d model.Difficulty) bool {
	if s.phase == model.PhasePlaying {
		return false
	}
	s.difficulty = d
	return true
}

// Start begins a session at now and spawns the first targets.
// It is a no-op returning false when a session is already playing.
func (s *Session) Start(mode model.Mode, difficulty model.Difficulty, now time.Time) bool {
	if s.phase == model.PhasePlaying {
		return false
	}
	s.mode = mode
	s.difficulty = difficulty
	s.profile = ProfileFor(mode)
	s.phase = model.PhasePlaying
	s.lives = s.profile.InitialLives
	s.initialLives = s.profile.InitialLives
	s.targets = nil
	s.stats = model.SessionStats{}
	s.sessionStart = now
	s.lastLifeDeduction = time.Time{}
	s.now = now

	s.scheduler = NewScheduler(s.profile, difficulty, s.opts.Surface, s.opts.Rand)
	s.kinematics = NewKinematics(s.opts.Surface, s.opts.Rand)
	s.resolver = NewResolver(s.profile, s.opts.HitPolicy)

	s.spawn(now)
	s.stats.CurrentSpawnRate = Curve(s.mode, s.difficulty, 0).Speed
	return true
}

// Stop ends the session immediately regardless of lives. Later Step and Click calls are no-ops.
func (s *Session) Stop() {
	if s.phase != model.PhasePlaying {
		return
	}
	s.finish(s.now)
}

// Step advances the simulation by one tick and returns the resulting view.
// Outside the playing phase it only returns the current view.
func (s *Session) Step(now time.Time) Snapshot {
	if s.phase != model.PhasePlaying {
		return s.Snapshot()
	}
	s.now = now
	s.stats.Elapsed = now.Sub(s.sessionStart)

	s.kinematics.Advance(s.targets, now)
	s.expire(now)
	if s.phase == model.PhasePlaying {
		if s.scheduler.Due(now, s.lastSpawn, s.sessionStart, s.nextInterval) {
			s.spawn(now)
		}
		s.stats.CurrentSpawnRate = Curve(s.mode, s.difficulty, s.stats.Elapsed).Speed
	}
	s.checkInvariants()
	return s.Snapshot()
}

// Click resolves a shot at surface coordinates (x, y). Outside the playing phase it is a no-op.
func (s *Session) Click(x, y float64, now time.Time) HitOutcome {
	if s.phase != model.PhasePlaying {
		return HitOutcome{Stats: s.Stats()}
	}
	s.now = now
	hits := s.resolver.Resolve(s.targets, x, y, now, &s.stats)
	if hits > 0 {
		s.emit(Event{Kind: EventHit, At: now, Count: hits, Lives: s.lives})
	} else {
		s.emit(Event{Kind: EventMiss, At: now, Lives: s.lives})
		if s.profile.Miss == MissCostsLife {
			s.loseLife(now)
		}
	}
	if s.phase == model.PhasePlaying && s.profile.HitQuota > 0 && s.stats.Hits >= s.profile.HitQuota {
		s.finish(now)
	}
	s.checkInvariants()
	return HitOutcome{HitCount: hits, Stats: s.Stats()}
}

// expire removes unhit targets older than TargetLifetime, charging at most one
// life per cooldown window, and drops hit targets once their linger has passed.
func (s *Session) expire(now time.Time) {
	expired := false
	kept := s.targets[:0]
	for _, t := range s.targets {
		switch {
		case !t.Hit && t.Expired(now):
			expired = true
		case t.Hit && now.Sub(t.HitAt) > HitLinger:
			// hit visual finished
		default:
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.targets); i++ {
		s.targets[i] = nil
	}
	s.targets = kept

	if expired && (s.lastLifeDeduction.IsZero() || now.Sub(s.lastLifeDeduction) >= LifeCooldown) {
		s.lastLifeDeduction = now
		s.loseLife(now)
	}
}

func (s *Session) loseLife(now time.Time) {
	if s.lives > 0 {
		s.lives--
	}
	s.emit(Event{Kind: EventLifeLost, At: now, Lives: s.lives})
	if s.lives == 0 {
		s.finish(now)
	}
}

func (s *Session) spawn(now time.Time) {
	fresh := s.scheduler.Spawn(now)
	if s.profile.Replace {
		s.targets = fresh
	} else {
		s.targets = append(s.targets, fresh...)
	}
	s.lastSpawn = now
	s.nextInterval = s.scheduler.DrawInterval()
}

func (s *Session) finish(now time.Time) {
	s.phase = model.PhaseFinished
	s.emit(Event{Kind: EventFinished, At: now, Count: s.stats.Hits, Lives: s.lives})
}

// emit delivers e to the listener. A panicking listener cannot disturb the session.
func (s *Session) emit(e Event) {
	if s.opts.Listener == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.opts.Listener.OnEvent(e)
}

func (s *Session) checkInvariants() {
	if !invariant(s.lives >= 0 && s.lives <= s.initialLives, "lives out of range") {
		s.lives = int(clamp(float64(s.lives), 0, float64(s.initialLives)))
	}
	if !invariant(s.stats.Hits <= s.stats.TotalShots, "hits exceed shots") {
		s.stats.TotalShots = s.stats.Hits
		s.stats.Accuracy = 100
	}
}
