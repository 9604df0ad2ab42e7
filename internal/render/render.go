// Package render writes the shortlist for terminal consumption.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rpatel-labs/niftyscan/internal/model"
)

// Table writes the shortlist as an aligned table, or the no-results
// message when the shortlist is empty.
func Table(w io.Writer, shortlist []model.Candidate) error {
	if len(shortlist) == 0 {
		_, err := fmt.Fprintln(w, "No stocks met all criteria today.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKER\tPRICE\tSCORE\tRR\tTARGET\tSTOP\tRSI\tADX")
	for _, c := range shortlist {
		fmt.Fprintf(tw, "%s\t%.2f\t%d\t%.2f\t%.2f\t%.2f\t%.1f\t%.1f\n",
			c.Symbol, c.Price, c.Score, c.RiskReward, c.Target, c.Stop, c.RSI, c.ADX)
	}
	return tw.Flush()
}
