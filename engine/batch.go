package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/formatter"
)

// commentPrefix starts a line that batch processing skips.
const commentPrefix = "#"

// LineResult is the outcome of one formula of a batch.
type LineResult struct {
	Line   int    `json:"line"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`

	Node ast.Node `json:"-"`
	Err  error    `json:"-"`
}

// Report collects the results of one batch run in input order.
type Report struct {
	RunID    string        `json:"run_id"`
	Source   string        `json:"source"`
	Results  []LineResult  `json:"results"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

func defaultWorkers() int {
	return runtime.NumCPU()
}

// ProcessFile runs Process over every non-blank, non-comment line of the
// file at path. Failing lines are reported, not returned as an error; the
// error result is reserved for I/O failures and cancellation.
func (e *Engine) ProcessFile(ctx context.Context, path string) (*Report, error) {
	lines, err := readFormulas(path)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   uuid.New().String(),
		Source:  path,
		Results: make([]LineResult, len(lines)),
	}
	logger := e.logger.With(zap.String("run_id", report.RunID), zap.String("source", path))
	start := time.Now()

	bar := progressbar.NewOptions(len(lines),
		progressbar.OptionSetWriter(e.progress),
		progressbar.OptionSetDescription(filepath.Base(path)),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// limit the number of workers
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i, l := range lines {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
		}

		wg.Add(1)
		go func(i int, l formulaLine) {
			defer func() {
				<-sem
				wg.Done()
			}()

			res := LineResult{Line: l.number, Input: l.text}
			n, err := e.Process(l.text)
			if err != nil {
				logger.Error("Error processing formula", zap.Int("line", l.number), zap.Error(err))
				res.Err, res.Error = err, err.Error()
			} else {
				res.Node, res.Output = n, formatter.Infix(n)
			}
			report.Results[i] = res
			_ = bar.Add(1)
		}(i, l)
	}
	wg.Wait()
	_ = bar.Finish()

	for _, r := range report.Results {
		if r.Err != nil {
			report.Failed++
		}
	}
	report.Duration = time.Since(start)
	logger.Info("batch finished",
		zap.Int("formulas", len(lines)),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

type formulaLine struct {
	number int
	text   string
}

func readFormulas(path string) ([]formulaLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	defer f.Close()

	var lines []formulaLine
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, commentPrefix) {
			continue
		}
		lines = append(lines, formulaLine{number: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return lines, nil
}
