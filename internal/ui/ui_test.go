package ui

import (
	"strings"
	"testing"

	"github.com/alfredjeanlab/discovery/internal/model"
)

func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := noColor
	noColor = !enabled
	t.Cleanup(func() { noColor = prev })
}

func TestRender_NoColor(t *testing.T) {
	withColor(t, false)
	for name, got := range map[string]string{
		"accent": RenderAccent("x"),
		"muted":  RenderMuted("x"),
		"node":   RenderNodeType(model.NodeProblem, "x"),
	} {
		if got != "x" {
			t.Errorf("%s: got %q, want plain text", name, got)
		}
	}
}

func TestRenderNodeType_Colors(t *testing.T) {
	withColor(t, true)
	seen := map[string]model.NodeType{}
	for _, nt := range []model.NodeType{
		model.NodeStakeholder, model.NodeProblem, model.NodeOutcome, model.NodeMetric, model.NodeInterview,
	} {
		got := RenderNodeType(nt, "x")
		if !strings.HasPrefix(got, "\x1b[38;5;") || !strings.HasSuffix(got, "x\x1b[0m") {
			t.Fatalf("RenderNodeType(%s) = %q, want ANSI-wrapped text", nt, got)
		}
		if other, dup := seen[got]; dup {
			t.Errorf("%s and %s share a color", nt, other)
		}
		seen[got] = nt
	}
	if got := RenderNodeType("unknown", "x"); got != RenderMuted("x") {
		t.Errorf("unknown type = %q, want muted", got)
	}
}

func TestShouldUseColor(t *testing.T) {
	for _, tc := range []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"NoColor", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"Force", map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "1"}, true},
		{"ClicolorZero", map[string]string{"NO_COLOR": "", "CLICOLOR_FORCE": "", "CLICOLOR": "0"}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"NO_COLOR", "CLICOLOR_FORCE", "CLICOLOR"} {
				t.Setenv(k, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if got := ShouldUseColor(); got != tc.want {
				t.Fatalf("ShouldUseColor() = %v, want %v", got, tc.want)
			}
		})
	}
}
