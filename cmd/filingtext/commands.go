package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"filingtext/internal/analysis"
	"filingtext/internal/tui"
)

// inputFiles merges the -f flag with positional arguments.
func inputFiles(file string, args []string) ([]string, error) {
	var files []string
	if file != "" {
		files = append(files, file)
	}
	files = append(files, args...)
	if len(files) == 0 {
		return nil, errors.New("no input file (use -f FILE or pass paths)")
	}
	return files, nil
}

// readInput loads a file for the single-file commands, turning a missing file
// into a user-facing error.
func readInput(path string) (string, error) {
	doc, err := analysis.ReadDocument(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file not found at '%s'", path)
		}
		return "", fmt.Errorf("reading file: %w", err)
	}
	return doc.Content, nil
}

func (a *app) fogCmd() *cobra.Command {
	var (
		file     string
		hotspots int
	)
	cmd := &cobra.Command{
		Use:   "fog [-f file] [files...]",
		Short: "Calculate the Gunning Fog index of text files",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := inputFiles(file, args)
			if err != nil {
				return err
			}
			sc, err := a.scorer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range files {
				fmt.Fprintf(out, "Analyzing '%s'...\n", path)
				text, err := readInput(path)
				if err != nil {
					return err
				}
				report := sc.Analyze(text)
				printFogReport(out, text, report)
				if hotspots > 0 && report.Words > 0 {
					printHotspots(out, sc.Hotspots(text, hotspots))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the text file to analyze")
	cmd.Flags().IntVar(&hotspots, "hotspots", 0, "Also list the N sentences with the highest fog index")
	return cmd
}

func (a *app) keywordsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "keywords [-f file] [files...]",
		Short: "Count ESG keyword mentions in text files",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := inputFiles(file, args)
			if err != nil {
				return err
			}
			counter := a.counter()
			out := cmd.OutOrStdout()
			for _, path := range files {
				fmt.Fprintf(out, "Analyzing '%s' for ESG keywords...\n", path)
				text, err := readInput(path)
				if err != nil {
					return err
				}
				printKeywordReport(out, counter.Count(text))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the text or markdown file to analyze")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		format   string
		workers  int
		hotspots int
	)
	cmd := &cobra.Command{
		Use:   "batch patterns...",
		Short: "Score many documents concurrently and record the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format: %s", format)
			}
			svc, err := a.service(true, workers, hotspots)
			if err != nil {
				return err
			}
			results, err := svc.AnalyzeFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			if format == "json" {
				return printResultsJSON(cmd.OutOrStdout(), results)
			}
			return printResultsTable(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent documents (defaults to batch.workers)")
	cmd.Flags().IntVar(&hotspots, "hotspots", 0, "Attach the N sentences with the highest fog index to each result")
	return cmd
}

func (a *app) browseCmd() *cobra.Command {
	var hotspots int
	cmd := &cobra.Command{
		Use:   "browse patterns...",
		Short: "Score documents and browse the reports interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(true, 0, hotspots)
			if err != nil {
				return err
			}
			results, err := svc.AnalyzeFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(tui.New(svc, results), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().IntVar(&hotspots, "hotspots", 3, "Sentences with the highest fog index shown per document")
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var (
		limit    int
		clearAll bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously recorded batch results",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			if st == nil {
				return errors.New("history needs a store (set store.type to memory or sqlite)")
			}
			if clearAll {
				if err := st.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			}
			results, err := st.List(limit)
			if err != nil {
				return err
			}
			if len(results) == 0 && !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored results.")
				return nil
			}
			if asJSON {
				return printResultsJSON(cmd.OutOrStdout(), results)
			}
			return printResultsTable(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results (0 for all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all stored results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
