package views

import (
	"fmt"
	"io"
	"text/tabwriter"

	"vehicle-telemetry/models"
)

// WriteSummary prints the min/max table as aligned text.
func WriteSummary(out io.Writer, t *models.Table) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Column\tMin\tMax\tMissing\t\n")
	for _, s := range models.Summarize(t) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t\n", s.Name, s.FormatMin(), s.FormatMax(), s.Missing)
	}
	return tw.Flush()
}
