package cmd

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dqscore/dqscore/internal/connectors"
	"github.com/dqscore/dqscore/internal/ingest"
	"github.com/dqscore/dqscore/internal/report"
	"github.com/dqscore/dqscore/internal/scoring"
)

var (
	scoreRecursive bool
	scoreFormat    string
	scoreOutput    string
	scoreMaxRows   int
	scoreWorkers   int
	scoreMinSize   int64
	scoreMaxSize   int64
	scoreWeights   []string
)

var scoreCmd = &cobra.Command{
	Use:   "score [file or directory]",
	Short: "Score CSV files on five quality dimensions",
	Long: `Score one CSV file, or every CSV file in a directory, on
completeness, uniqueness, consistency, validity, and timeliness, and
report the weighted composite Data Quality Score.

Examples:
  dqscore score data.csv
  dqscore score /data --recursive --format json
  dqscore score data.csv --weight completeness=0.4 --weight validity=0.6
  dqscore score /data --output results.yaml --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weights, err := parseWeightFlags(scoreWeights)
		if err != nil {
			return err
		}
		if weights == nil {
			weights = cfg.EngineWeights()
		}

		maxRows := scoreMaxRows
		if maxRows == 0 {
			maxRows = cfg.MaxRows
		}

		target := args[0]
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", target, err)
		}

		engine := scoring.NewEngine()

		var reports []*report.Report
		if info.IsDir() {
			reports, err = scoreDirectory(engine, target, weights, maxRows)
		} else {
			var rep *report.Report
			rep, err = scoreFile(engine, target, info.Size(), weights, maxRows)
			if rep != nil {
				reports = []*report.Report{rep}
			}
		}
		if err != nil {
			return err
		}

		out := os.Stdout
		if scoreOutput != "" {
			f, err := os.Create(scoreOutput)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return report.Render(out, scoreFormat, reports)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolVarP(&scoreRecursive, "recursive", "r", false,
		"search directories recursively")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", "text",
		"output format (text, json, yaml)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "",
		"output file (default: stdout)")
	scoreCmd.Flags().IntVar(&scoreMaxRows, "max-rows", 0,
		"cap rows read per file (0 = unlimited)")
	scoreCmd.Flags().IntVar(&scoreWorkers, "workers", 0,
		"parallel workers for directory scoring (default: CPU cores)")
	scoreCmd.Flags().Int64Var(&scoreMinSize, "min-size", 0,
		"minimum file size in bytes")
	scoreCmd.Flags().Int64Var(&scoreMaxSize, "max-size", 0,
		"maximum file size in bytes")
	scoreCmd.Flags().StringArrayVar(&scoreWeights, "weight", nil,
		"dimension weight override, e.g. completeness=0.4 (repeatable)")
}

func scoreFile(engine *scoring.Engine, path string, size int64, weights scoring.Weights, maxRows int) (*report.Report, error) {
	start := time.Now()

	ds, err := ingest.ReadFile(path, ingest.Options{MaxRows: maxRows})
	if err != nil {
		return nil, fmt.Errorf("failed to ingest %s: %w", path, err)
	}

	result := engine.Score(ds.Rows, ds.Columns, weights)
	return report.New(path, size, len(ds.Rows), len(ds.Columns), result, time.Since(start)), nil
}

func scoreDirectory(engine *scoring.Engine, dir string, weights scoring.Weights, maxRows int) ([]*report.Report, error) {
	files, err := connectors.DiscoverFiles(dir, "csv", connectors.DiscoveryOptions{
		Recursive: scoreRecursive,
		MinSize:   scoreMinSize,
		MaxSize:   scoreMaxSize,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", dir)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Scoring files..."),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
	if quiet {
		bar = progressbar.DefaultSilent(int64(len(files)))
	}

	workers := scoreWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	semaphore := make(chan struct{}, workers)
	results := make(chan *report.Report, len(files))

	var wg sync.WaitGroup
	for _, file := range files {
		wg.Add(1)
		go func(f connectors.FileMeta) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			rep, err := scoreFile(engine, f.Path, f.Size, weights, maxRows)
			_ = bar.Add(1)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to score %s: %v\n", f.Path, err)
				return
			}
			results <- rep
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var reports []*report.Report
	for rep := range results {
		reports = append(reports, rep)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Source < reports[j].Source })
	return reports, nil
}

// parseWeightFlags turns repeated name=value flags into a weight map.
func parseWeightFlags(flags []string) (scoring.Weights, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	weights := make(scoring.Weights, len(flags))
	for _, flag := range flags {
		name, value, ok := strings.Cut(flag, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q, expected name=value", flag)
		}
		w, err := strconv.ParseFloat(value, 64)
		if err != nil || w < 0 {
			return nil, fmt.Errorf("invalid weight value %q for %s", value, name)
		}
		weights[strings.ToLower(strings.TrimSpace(name))] = w
	}
	return weights, nil
}
