package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	apiclient "github.com/gpudeals/gpu-deals/internal/api/client"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printResultsTable(w io.Writer, results []apiclient.Result) error {
	tw := newTabWriter(w)
	tw.writef("ID\tVENDOR\tBENCHMARK\tLISTINGS\tLOWEST\tVALUE\n")
	for i := range results {
		r := &results[i]
		lowest := "-"
		if r.LowestPrice != nil {
			lowest = fmt.Sprintf("$%.2f", *r.LowestPrice)
		}
		value := "-"
		if r.CalculatedValue != nil {
			value = fmt.Sprintf("%d", *r.CalculatedValue)
		}
		tw.writef("%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID,
			r.Vendor,
			r.Benchmark,
			len(r.Listings),
			lowest,
			value,
		)
	}
	return tw.finish()
}

func printResultDetail(w io.Writer, r *apiclient.Result) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", r.ID)
	tw.writef("Vendor:\t%s\n", r.Vendor)
	tw.writef("Benchmark:\t%d\n", r.Benchmark)
	if r.LowestPrice != nil {
		tw.writef("Lowest Price:\t$%.2f\n", *r.LowestPrice)
	}
	if r.CalculatedValue != nil {
		tw.writef("Value:\t%d\n", *r.CalculatedValue)
	}
	for store, l := range r.Listings {
		tw.writef("Listing (%s):\t%s %s\n", store, l.Price, truncate(l.URL, 60))
	}
	return tw.finish()
}

func printAlertsTable(w io.Writer, alerts []apiclient.Alert) error {
	tw := newTabWriter(w)
	tw.writef("BRAND\tPRICE\tEND\n")
	for i := range alerts {
		tw.writef("%s\t$%d\t%s\n",
			alerts[i].Brand,
			alerts[i].Price,
			alerts[i].EndDateTime,
		)
	}
	return tw.finish()
}

func printStatusDetail(w io.Writer, s *apiclient.Status) error {
	tw := newTabWriter(w)
	tw.writef("Items:\t%d\n", s.Items)
	tw.writef("Cadence:\tevery %d minutes\n", s.CadenceMinutes)
	tw.writef("Endpoint:\t%s\n", s.APIURL)
	// No attempt yet renders as "Never" rather than omitting the line.
	if s.LastAttempt == "" {
		tw.writef("Last Attempt:\tNever\n")
	} else {
		tw.writef("Last Attempt:\t%s\n", s.LastAttempt)
	}
	if s.LastError != "" {
		tw.writef("Last Error:\t%s\n", s.LastError)
	}
	if s.NextRun != "" {
		tw.writef("Next Run:\t%s\n", s.NextRun)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
