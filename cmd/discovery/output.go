package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alfredjeanlab/discovery/internal/model"
	"github.com/alfredjeanlab/discovery/internal/ui"
)

const maxLabelWidth = 50

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// clip shortens s to at most n runes for table output.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printProjectsTable(out io.Writer, projects []*model.Project, total int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPDATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, clip(p.Name, maxLabelWidth), p.UpdatedAt.Format("2006-01-02"))
	}
	w.Flush()
	fmt.Fprintf(out, "\n%d projects (%d total)\n", len(projects), total)
}

func printGraphTable(out io.Writer, g *model.GraphData) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tTYPE\tLABEL")
	for _, n := range g.Nodes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, ui.RenderNodeType(n.Type, n.Type.String()), clip(n.Label, maxLabelWidth))
	}
	w.Flush()

	if len(g.Edges) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tRELATION\tTARGET")
		for _, e := range g.Edges {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Source, ui.RenderMuted(string(e.Label)), e.Target)
		}
		w.Flush()
	}

	fmt.Fprintf(out, "\n%d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
	if s := g.Stats; s != nil {
		fmt.Fprintf(out, "%d stakeholders, %d problems, %d outcomes, %d interviews\n",
			s.StakeholderCount, s.ProblemCount, s.OutcomeCount, s.InterviewCount)
	}
}
