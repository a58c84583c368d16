package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ritzau/electre-kernel/pkg/kernel"
	"github.com/ritzau/electre-kernel/pkg/outranking"
)

// SetColor enables or disables colored output
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// PrintKernelReport prints a nicely formatted kernel report with colors
func PrintKernelReport(w io.Writer, source string, r *kernel.Result) {
	// Color definitions
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Fprintln(w, "Electre Kernel Report")
	bold.Fprintln(w, "=====================")
	fmt.Fprintf(w, "Input: %s\n", source)
	fmt.Fprintf(w, "Alternatives: %d\n", len(r.Initial.Labels()))
	fmt.Fprintf(w, "Outranking edges: %d", r.Initial.EdgeCount())
	if r.SelfLoops > 0 {
		fmt.Fprintf(w, " (%d self-loops ignored)", r.SelfLoops)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Method: %s\n", r.Method)

	// Cycle elimination
	if r.Iterations == 0 {
		green.Fprintln(w, "Cycles: none")
	} else {
		yellow.Fprintf(w, "Cycles eliminated: %d\n", r.Iterations)
		for _, id := range r.Reduced.NodeIDs() {
			node, _ := r.Reduced.Node(id)
			if !node.IsAggregate() {
				continue
			}
			cyan.Fprintf(w, "  Aggregated: %s\n", strings.Join(kernel.ExpandLabels(r.Reduced, []int64{id}), ", "))
		}
	}
	fmt.Fprintln(w)

	// Kernel
	bold.Fprintf(w, "Kernel (%d):\n", len(r.Labels))
	for _, l := range r.Labels {
		green.Fprintf(w, "  %s\n", l)
	}
}

// PrintCutReport prints the relations of a cut, one pair per line
func PrintCutReport(w io.Writer, threshold float64, pairs []outranking.Pair) {
	bold := color.New(color.Bold)
	colors := map[outranking.RelationType]*color.Color{
		outranking.Preference:      color.New(color.FgGreen),
		outranking.Indifference:    color.New(color.FgCyan),
		outranking.Incomparability: color.New(color.FgYellow),
		outranking.None:            color.New(color.Faint),
	}

	bold.Fprintln(w, "Electre Cut Relation")
	bold.Fprintln(w, "====================")
	fmt.Fprintf(w, "Cut threshold: %g\n\n", threshold)

	counts := make(map[outranking.RelationType]int)
	for _, p := range pairs {
		counts[p.Relation]++
		colors[p.Relation].Fprintf(w, "  %-12s %-12s %s\n", p.Initial, p.Terminal, p.Relation)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d preference, %d indifference, %d incomparability\n",
		counts[outranking.Preference], counts[outranking.Indifference], counts[outranking.Incomparability])
}
