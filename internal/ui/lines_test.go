package ui

import (
	"strings"
	"testing"

	"spacewalk/internal/core"
)

func TestPanelLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Player",
		Params: []core.Parameter{
			{Key: "energy", Label: "Energy", Value: "12"},
			{Key: "rule", Label: "Rule", Value: "299338136518556439977845337106716710210"},
		},
	}}}
	lines := panelLines("Spacewalk", snap)
	if lines[0] != "Spacewalk" || lines[2] != "Player" {
		t.Fatalf("unexpected header %q", lines[:3])
	}
	if !strings.HasSuffix(lines[3], " 12") {
		t.Fatalf("energy row %q", lines[3])
	}
	if !strings.HasSuffix(lines[4], "...") || len(lines[4]) > 2+18+1+maxValueWidth {
		t.Fatalf("rule row should be shortened: %q", lines[4])
	}

	empty := panelLines("X", core.ParameterSnapshot{})
	if empty[len(empty)-1] != "No parameters" {
		t.Fatalf("unexpected empty panel %q", empty)
	}
}

func TestBuildTitle(t *testing.T) {
	if got := buildTitle(nil); got != "Status" {
		t.Fatalf("nil sim title %q", got)
	}
}
