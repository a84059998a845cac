package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/engine"
	"github.com/gnoswap-labs/formula/formatter"
	"github.com/gnoswap-labs/formula/scanner"
)

// batch command flags
var (
	batchJsonOutput bool
	batchOutPath    string
	workers         int
)

var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Simplify every formula of one or more files, one formula per line",
	Long: `Simplifies every line of the given files. Directories are searched for
*.formula and *.fml files. Blank lines and lines starting with # are skipped.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		e := newEngine(engine.WithProgress(os.Stderr), engine.WithWorkers(workers))
		exitOnFailure(runBatch(ctx, cmd.OutOrStdout(), e, newPrinter(), args, batchJsonOutput, batchOutPath))
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Simplify a formula file again whenever it changes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		e := newEngine(engine.WithProgress(io.Discard), engine.WithWorkers(workers))
		p := newPrinter()
		w := cmd.OutOrStdout()
		err := e.Watch(ctx, args[0], func(r *engine.Report, err error) {
			if err != nil {
				logger.Error("Error processing file", zap.String("file", args[0]), zap.Error(err))
				return
			}
			printReport(w, p, r)
		})
		exitOnFailure(err)
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchJsonOutput, "json", false, "Output results in JSON format")
	batchCmd.Flags().StringVarP(&batchOutPath, "output", "o", "", "Output path (when using JSON)")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "Number of formulas processed concurrently (default: number of CPUs)")
	watchCmd.Flags().IntVar(&workers, "workers", 0, "Number of formulas processed concurrently (default: number of CPUs)")
}

func runBatch(ctx context.Context, w io.Writer, e *engine.Engine, p *formatter.Printer, paths []string, isJson bool, jsonOutput string) error {
	files, err := scanner.New().Collect(paths...)
	if err != nil {
		return err
	}

	reports := make([]*engine.Report, 0, len(files))
	var failed bool
	for _, path := range files {
		r, err := e.ProcessFile(ctx, path)
		if err != nil {
			return err
		}
		reports = append(reports, r)
		if r.Failed > 0 {
			failed = true
		}
	}

	if isJson {
		if err := writeJSON(w, reports, jsonOutput); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			printReport(w, p, r)
		}
	}

	if failed {
		return errFailed
	}
	return nil
}

func printReport(w io.Writer, p *formatter.Printer, r *engine.Report) {
	for _, res := range r.Results {
		if res.Err != nil {
			fmt.Fprint(w, p.Diagnostic(formatter.Diagnostic{
				Source: r.Source,
				Line:   res.Line,
				Text:   res.Input,
				Err:    res.Err,
			}))
			continue
		}
		fmt.Fprintf(w, "%s:%d: %s\n", r.Source, res.Line, res.Output)
	}
}

func writeJSON(w io.Writer, reports []*engine.Report, jsonOutput string) error {
	d, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling results to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(w, string(d))
		return err
	}
	return os.WriteFile(jsonOutput, d, 0o644)
}
