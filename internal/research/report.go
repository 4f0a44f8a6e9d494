package research

import (
	"fmt"
	"strings"

	"github.com/sells-group/deepresearch-cli/internal/model"
)

// Summarize renders a short human-readable account of a run: what each stage
// did, and every unit of work that was absorbed as a degradation.
func Summarize(r *model.ResearchResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s\n", r.RunID)
	for _, stage := range r.Stages {
		fmt.Fprintf(&b, "  %-13s %-9s %6dms", stage.Stage, stage.Status, stage.Duration)
		if stage.Detail != "" {
			fmt.Fprintf(&b, "  %s", stage.Detail)
		}
		b.WriteString("\n")
	}

	if len(r.Degradations) == 0 {
		b.WriteString("no degradations\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d degradation(s):\n", len(r.Degradations))
	for _, d := range r.Degradations {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", d.Stage, d.Unit, d.Reason)
	}

	return b.String()
}
