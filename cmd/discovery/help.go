package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/discovery/internal/ui"
)

// Patterns over cobra's plain help text.
var (
	// Group titles ("Graphs:", "System:", "Flags:", ...) sit unindented at the
	// end of their line.
	reGroupHeader = regexp.MustCompile(`(?m)^([A-Z][^\n]*:)\s*$`)

	// Subcommand rows: two spaces, the name, then the padding before its
	// short description.
	reCommand = regexp.MustCompile(`(?m)^(  )(\S+)(  )`)

	// Value type after a flag name, e.g. "--project int64". Longer names come
	// first and the trailing \b stops "int" matching inside "int64".
	reFlagType = regexp.MustCompile(`(--?\S+\s+)(stringSlice|stringArray|string|duration|int64|int)\b`)

	// Defaults cobra appends to flag usage, e.g. (default "discovery.>").
	reDefault = regexp.MustCompile(`\(default "[^"]*"\)`)
)

// colorizedHelpFunc renders cobra's usage text, colored when stdout
// supports it.
func colorizedHelpFunc() func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		if !ui.ShouldUseColor() {
			cmd.SetOut(out)
			_ = cmd.Usage()
			return
		}

		var buf bytes.Buffer
		cmd.SetOut(&buf)
		_ = cmd.Usage()
		cmd.SetOut(out)
		fmt.Fprint(out, colorizeHelpOutput(buf.String()))
	}
}

// colorizeHelpOutput styles group titles, subcommand names, flag value types
// and defaults.
func colorizeHelpOutput(s string) string {
	s = reGroupHeader.ReplaceAllStringFunc(s, func(m string) string {
		return ui.RenderAccent(strings.TrimSpace(m))
	})
	s = reCommand.ReplaceAllStringFunc(s, func(m string) string {
		p := reCommand.FindStringSubmatch(m)
		return p[1] + ui.RenderCommand(p[2]) + p[3]
	})
	s = reFlagType.ReplaceAllStringFunc(s, func(m string) string {
		p := reFlagType.FindStringSubmatch(m)
		return p[1] + ui.RenderMuted(p[2])
	})
	return reDefault.ReplaceAllStringFunc(s, ui.RenderMuted)
}
