package ui

import (
	"fmt"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorCmd    = 250 // light gray
	colorMuted  = 245 // medium gray
)

// nodeColors gives every graph node type its own hue.
var nodeColors = map[model.NodeType]int{
	model.NodeStakeholder: 74,  // blue
	model.NodeProblem:     203, // red
	model.NodeOutcome:     114, // green
	model.NodeMetric:      179, // amber
	model.NodeInterview:   176, // violet
}

// noColor is decided once from the environment; ForceNoColor overrides it.
var noColor = !ShouldUseColor()

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return paint(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return paint(colorMuted, s)
}

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string {
	return paint(colorCmd, s)
}

// RenderNodeType returns s in the color of the given node type. Unknown
// types render muted.
func RenderNodeType(t model.NodeType, s string) string {
	code, ok := nodeColors[t]
	if !ok {
		code = colorMuted
	}
	return paint(code, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
