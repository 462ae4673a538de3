package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"filingtext/internal/domain"
)

const (
	rule     = "--------------------------------"
	wideRule = "--------------------------------------------------"
)

func printFogReport(w io.Writer, text string, r domain.FogReport) {
	switch {
	case text == "":
		fmt.Fprintln(w, "File is empty, nothing to analyze.")
		return
	case r.Sentences == 0:
		fmt.Fprintln(w, "No complete sentences found in the text.")
		return
	case r.Words == 0:
		fmt.Fprintln(w, "No words found in the text.")
		return
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Sentences: %d\n", r.Sentences)
	fmt.Fprintf(w, "Total Words: %d\n", r.Words)
	fmt.Fprintf(w, "Total Complex Words: %d\n", r.ComplexWords)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Average Sentence Length: %.2f\n", r.AvgSentenceLength)
	fmt.Fprintf(w, "Percentage of Complex Words: %.2f%%\n", r.PercentComplex)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Gunning Fog Index: %.2f\n", r.Index)
}

func printHotspots(w io.Writer, hotspots []domain.Hotspot) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Most Complex Sentences:")
	for _, h := range hotspots {
		fmt.Fprintf(w, "[%.2f] %s\n", h.Fog, h.Sentence)
	}
}

func printKeywordReport(w io.Writer, r domain.KeywordReport) {
	fmt.Fprintf(w, "Found %d total keyword mentions.\n", r.Total)
	fmt.Fprintln(w, wideRule)
	for _, c := range r.Categories {
		fmt.Fprintf(w, "%s:\n", c.Category)
		if c.Total() == 0 {
			fmt.Fprintln(w, "  (No mentions found)")
		}
		for _, k := range c.Keywords {
			if k.Count > 0 {
				fmt.Fprintf(w, "- %s: %d\n", k.Keyword, k.Count)
			}
		}
		fmt.Fprintln(w)
	}
}

func printResultsTable(w io.Writer, results []domain.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tFOG\tSENTENCES\tWORDS\tCOMPLEX\tKEYWORDS")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\t\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\t%d\t%d\n",
			r.Path, r.Fog.Index, r.Fog.Sentences, r.Fog.Words, r.Fog.ComplexWords, r.Keywords.Total)
	}
	return tw.Flush()
}

// resultRow adds the read error, which domain.Result does not serialize.
type resultRow struct {
	domain.Result
	Error string `json:"error,omitempty"`
}

func printResultsJSON(w io.Writer, results []domain.Result) error {
	rows := make([]resultRow, len(results))
	for i, r := range results {
		rows[i] = resultRow{Result: r}
		if r.Err != nil {
			rows[i].Error = r.Err.Error()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
