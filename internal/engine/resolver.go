package engine

import (
	"time"

	"github.com/verte-zerg/tuiaim/internal/model"
	"github.com/verte-zerg/tuiaim/internal/stats"
)

// Resolver applies one click to the live target set and the session statistics.
type Resolver struct {
	policy  model.HitPolicy
	profile Profile
}

// NewResolver returns a resolver for profile. An empty policy means model.HitAll.
func NewResolver(profile Profile, policy model.HitPolicy) Resolver {
	if policy == "" {
		policy = model.HitAll
	}
	return Resolver{policy: policy, profile: profile}
}

// Resolve counts the shot, marks the targets under (x, y) as hit and folds their
// reaction times into st. It returns the number of targets hit by this click.
// A click that hits n > 1 targets is charged n shots so hits never exceed shots.
// Lives are not touched here; the session applies the mode's miss policy.
func (r Resolver) Resolve(targets []*Target, x, y float64, now time.Time, st *model.SessionStats) int {
	st.TotalShots++

	hits := r.candidates(targets, x, y)
	for _, t := range hits {
		t.markHit(now)
		reaction := now.Sub(t.CreatedAt)
		st.AverageReactionTime = stats.RunningMean(st.AverageReactionTime, st.Hits, reaction)
		st.LastHitReactionTime = reaction
		st.ReactionTimes = append(st.ReactionTimes, reaction)
		st.Hits++
		if r.profile.Combo {
			st.ConsecutiveHits++
			if st.ConsecutiveHits > st.BestConsecutiveHits {
				st.BestConsecutiveHits = st.ConsecutiveHits
			}
		}
	}
	if len(hits) > 1 {
		st.TotalShots += len(hits) - 1
	}
	if len(hits) == 0 {
		st.Misses++
		if r.profile.Combo {
			st.ConsecutiveHits = 0
		}
	}
	st.Accuracy = stats.Accuracy(st.Hits, st.TotalShots)
	return len(hits)
}

func (r Resolver) candidates(targets []*Target, x, y float64) []*Target {
	var out []*Target
	for _, t := range targets {
		if t.Hit || !t.Contains(x, y) {
			continue
		}
		if r.policy != model.HitNearest {
			out = append(out, t)
			continue
		}
		if len(out) == 0 {
			out = append(out, t)
		} else if t.Distance(x, y) < out[0].Distance(x, y) {
			out[0] = t
		}
	}
	return out
}
