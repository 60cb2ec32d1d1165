package main

import (
	"fmt"
	"math"
	"strings"

	"qsim/quantum"
)

// bar returns a bar of width cells scaled by frac in [0,1].
func bar(frac float64, width int) string {
	filled := int(math.Round(frac * float64(width)))
	filled = min(max(filled, 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// renderHistogram renders one line per basis label: the label, a bar scaled
// to the share of shots, the count and the percentage.
func renderHistogram(counts quantum.Counts, width int) string {
	var sb strings.Builder
	total := counts.Total()
	for _, label := range counts.Labels() {
		n := counts[label]
		frac := 0.0
		if total > 0 {
			frac = float64(n) / float64(total)
		}
		fmt.Fprintf(&sb, "%s %s %6d %6.2f%%\n",
			qubitLabelStyle.Render("|"+label+"⟩"), bar(frac, width), n, 100*frac)
	}
	fmt.Fprintf(&sb, "%s", dimStyle.Render(fmt.Sprintf("%d shots", total)))
	return sb.String()
}

// renderQubitProbs renders the marginal P(1) of every qubit.
func renderQubitProbs(probs []quantum.QubitProbability, width int) string {
	var sb strings.Builder
	for q, p := range probs {
		fmt.Fprintf(&sb, "%s %s %.3f\n",
			qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", q))), bar(p.Prob1, width), p.Prob1)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
