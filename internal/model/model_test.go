package model

import (
	"errors"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Tracking ")
	if err != nil || m != ModeTracking {
		t.Fatalf("unexpected parse: %q %v", m, err)
	}
	if _, err := ParseMode("sniper"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestParseDifficultyAndIndex(t *testing.T) {
	cases := []struct {
		in    string
		index int
	}{
		{"easy", 0},
		{"MEDIUM", 1},
		{"hard", 2},
	}
	for _, tc := range cases {
		d, err := ParseDifficulty(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if d.Index() != tc.index {
			t.Fatalf("%q index = %d, want %d", tc.in, d.Index(), tc.index)
		}
	}
	if _, err := ParseDifficulty("insane"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestParseHitPolicy(t *testing.T) {
	if p, err := ParseHitPolicy(""); err != nil || p != HitAll {
		t.Fatalf("empty policy should mean all, got %q %v", p, err)
	}
	if p, err := ParseHitPolicy("nearest"); err != nil || p != HitNearest {
		t.Fatalf("unexpected policy %q %v", p, err)
	}
	if _, err := ParseHitPolicy("first"); !errors.Is(err, ErrUnknownHitPolicy) {
		t.Fatalf("expected ErrUnknownHitPolicy, got %v", err)
	}
}

func TestResolveCrosshair(t *testing.T) {
	c, err := ResolveCrosshair(Crosshair{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Preset != "classic" || c.Color != DefaultCrosshairColor || c.Size != 2 {
		t.Fatalf("unexpected default crosshair: %+v", c)
	}

	c, err = ResolveCrosshair(Crosshair{Preset: "dot", Color: "#ff0000", Size: -3})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !c.Dot || c.Color != "#ff0000" || c.Size != 0 {
		t.Fatalf("unexpected overrides: %+v", c)
	}

	if _, err := ResolveCrosshair(Crosshair{Preset: "scope"}); !errors.Is(err, ErrUnknownCrosshair) {
		t.Fatalf("expected ErrUnknownCrosshair, got %v", err)
	}
}

func TestCloneDetachesReactionTimes(t *testing.T) {
	s := SessionStats{ReactionTimes: []time.Duration{1, 2}}
	c := s.Clone()
	c.ReactionTimes[0] = 9
	if s.ReactionTimes[0] != 1 {
		t.Fatalf("clone shares reaction times")
	}
}
