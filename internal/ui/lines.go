package ui

import (
	"fmt"
	"strings"

	"spacewalk/internal/core"
)

// maxValueWidth truncates long values such as rule integers.
const maxValueWidth = 18

// panelLines flattens a parameter snapshot into the text rows of the HUD.
func panelLines(title string, snap core.ParameterSnapshot) []string {
	lines := []string{title}
	if len(snap.Groups) == 0 {
		return append(lines, "", "No parameters")
	}
	for _, group := range snap.Groups {
		lines = append(lines, "", group.Name)
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("  %-18s %s", p.Label, shorten(p.Value)))
		}
	}
	return lines
}

func shorten(v string) string {
	if len(v) <= maxValueWidth {
		return v
	}
	return v[:maxValueWidth-3] + "..."
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Status"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}
