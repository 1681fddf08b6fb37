package common

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ufbench/ufgen/workload"
)

// PrintSummary renders the post-run workload tally as a table.  The
// hot access row is only emitted when hot accounting was performed.
func PrintSummary(w io.Writer, s *workload.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Count", "Fraction"})
	table.Append([]string{
		workload.KindUnion.String(),
		strconv.Itoa(s.UnionOps),
		fmt.Sprintf("%.4f", fraction(s.UnionOps, s.TotalOps)),
	})
	table.Append([]string{
		workload.KindFind.String(),
		strconv.Itoa(s.FindOps),
		fmt.Sprintf("%.4f", s.FindFraction()),
	})
	table.Append([]string{
		workload.KindSameSet.String(),
		strconv.Itoa(s.SameSetOps),
		fmt.Sprintf("%.4f", fraction(s.SameSetOps, s.TotalOps)),
	})
	table.SetFooter([]string{"TOTAL", strconv.Itoa(s.TotalOps), ""})
	table.Render()

	if s.HotAccesses > 0 {
		fmt.Fprintf(w, "hot accesses: %d/%d (%.4f)\n", s.HotAccesses, s.Accesses, s.HotFraction())
	}
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
