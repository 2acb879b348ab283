package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiaim/internal/engine"
	"github.com/verte-zerg/tuiaim/internal/model"
	statsPkg "github.com/verte-zerg/tuiaim/internal/stats"
)

var (
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// hudLine formats the in-game status line and truncates it to width cells.
func hudLine(snap engine.Snapshot, width int) string {
	st := snap.Stats
	lost := max(snap.InitialLives-snap.Lives, 0)
	segments := []string{
		"Lives " + strings.Repeat("♥", max(snap.Lives, 0)) + strings.Repeat("♡", lost),
	}
	if quota := engine.ProfileFor(snap.Mode).HitQuota; quota > 0 {
		segments = append(segments, fmt.Sprintf("Hits %d/%d", st.Hits, quota))
	} else {
		segments = append(segments, fmt.Sprintf("Hits %d", st.Hits))
	}
	segments = append(segments,
		fmt.Sprintf("Acc %d%%", st.Accuracy),
		"Avg "+statsPkg.FormatMillis(st.AverageReactionTime),
		"Last "+statsPkg.FormatMillis(st.LastHitReactionTime),
	)
	if snap.Mode == model.ModePrecision {
		segments = append(segments, fmt.Sprintf("Combo %d (best %d)", st.ConsecutiveHits, st.BestConsecutiveHits))
	}
	segments = append(segments,
		fmt.Sprintf("Speed %.2f", st.CurrentSpawnRate),
		statsPkg.FormatClock(st.Elapsed),
	)
	line := strings.Join(segments, "  ")
	if width > 0 && runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}

func (m *Model) renderHUD() string {
	return hudStyle.Render(hudLine(m.snap, m.width))
}

// ModeSummary describes the rules of mode in one line.
func ModeSummary(mode model.Mode) string {
	p := engine.ProfileFor(mode)
	lives := fmt.Sprintf("%d lives", p.InitialLives)
	if p.InitialLives == 1 {
		lives = "1 life"
	}
	parts := []string{lives}
	if p.MaxRadius > p.MinRadius {
		parts = append(parts, fmt.Sprintf("radius %.0f-%.0f", p.MinRadius, p.MaxRadius))
	} else {
		parts = append(parts, fmt.Sprintf("radius %.0f", p.MinRadius))
	}
	switch {
	case p.RandomInterval():
		parts = append(parts, fmt.Sprintf("spawn every %s-%s", p.MinInterval, p.MaxInterval))
	case p.PerSpawn > 1:
		parts = append(parts, fmt.Sprintf("%d targets per spawn", p.PerSpawn))
	}
	switch p.Kind {
	case engine.KindDrifting:
		parts = append(parts, "targets drift")
	case engine.KindWandering:
		parts = append(parts, "one wandering target")
	}
	switch p.Miss {
	case engine.MissCostsLife:
		parts = append(parts, "miss costs a life")
	case engine.MissResetsCombo:
		parts = append(parts, "miss resets combo")
	case engine.MissFree:
		parts = append(parts, "misses are free")
	}
	if p.HitQuota > 0 {
		parts = append(parts, fmt.Sprintf("ends at %d hits", p.HitQuota))
	}
	if !p.Expires {
		parts = append(parts, "never expires")
	}
	return strings.Join(parts, " · ")
}
