package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dqscore/dqscore/internal/scoring"
)

// Report captures one scoring run. It carries only scores and counts,
// never cell values, so it is safe to hand to any downstream explanation
// layer.
type Report struct {
	ID          string         `json:"id" yaml:"id"`
	Source      string         `json:"source" yaml:"source"`
	SizeBytes   int64          `json:"size_bytes" yaml:"size_bytes"`
	RowCount    int            `json:"row_count" yaml:"row_count"`
	ColumnCount int            `json:"column_count" yaml:"column_count"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
	Dimensions  scoring.Scores `json:"dimensions" yaml:"dimensions"`
	DQS         int            `json:"dqs" yaml:"dqs"`
	Grade       string         `json:"grade" yaml:"grade"`
	Summary     string         `json:"summary" yaml:"summary"`
	Elapsed     time.Duration  `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// dimensionOrder fixes the display order of dimensions in text output.
var dimensionOrder = []string{
	scoring.DimCompleteness,
	scoring.DimUniqueness,
	scoring.DimConsistency,
	scoring.DimValidity,
	scoring.DimTimeliness,
}

// New assembles a report for one scored dataset.
func New(source string, sizeBytes int64, rowCount, columnCount int, result scoring.Composite, elapsed time.Duration) *Report {
	return &Report{
		ID:          uuid.NewString(),
		Source:      source,
		SizeBytes:   sizeBytes,
		RowCount:    rowCount,
		ColumnCount: columnCount,
		GeneratedAt: time.Now().UTC(),
		Dimensions:  result.Dimensions,
		DQS:         result.DQS,
		Grade:       Grade(result.DQS),
		Summary:     Summarize(result.Dimensions, result.DQS),
		Elapsed:     elapsed,
	}
}

// Grade bands a DQS the way the scan output bands null rates.
func Grade(dqs int) string {
	switch {
	case dqs >= 90:
		return "Excellent"
	case dqs >= 75:
		return "Good"
	case dqs >= 60:
		return "Fair"
	default:
		return "Poor"
	}
}

// weakThreshold is the score below which a dimension is called out.
const weakThreshold = 70

// Summarize produces a deterministic plain-language note on the weakest
// dimensions. Weak dimensions list in ascending score order, ties broken
// by name.
func Summarize(dims scoring.Scores, dqs int) string {
	type weak struct {
		name  string
		score int
	}
	var weaks []weak
	for _, name := range dimensionOrder {
		if score, ok := dims[name]; ok && score < weakThreshold {
			weaks = append(weaks, weak{name, score})
		}
	}
	if len(weaks) == 0 {
		return fmt.Sprintf("Overall quality is %s (DQS %d); no dimension scored below %d.",
			strings.ToLower(Grade(dqs)), dqs, weakThreshold)
	}
	sort.Slice(weaks, func(i, j int) bool {
		if weaks[i].score != weaks[j].score {
			return weaks[i].score < weaks[j].score
		}
		return weaks[i].name < weaks[j].name
	})
	parts := make([]string, len(weaks))
	for i, w := range weaks {
		parts[i] = fmt.Sprintf("%s (%d)", w.name, w.score)
	}
	return fmt.Sprintf("Overall quality is %s (DQS %d); weakest dimensions: %s.",
		strings.ToLower(Grade(dqs)), dqs, strings.Join(parts, ", "))
}

// Render writes reports to w in the requested format: text, json, or yaml.
func Render(w io.Writer, format string, reports []*Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		return yaml.NewEncoder(w).Encode(reports)
	case "text", "":
		renderText(w, reports)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderText(w io.Writer, reports []*Report) {
	for _, r := range reports {
		fmt.Fprintf(w, "\nFile: %s\n", r.Source)
		if r.SizeBytes > 0 {
			fmt.Fprintf(w, "- Size: %s\n", humanize.Bytes(uint64(r.SizeBytes)))
		}
		fmt.Fprintf(w, "- Rows: %s\n", humanize.Comma(int64(r.RowCount)))
		fmt.Fprintf(w, "- Columns: %d\n", r.ColumnCount)
		for _, name := range dimensionOrder {
			if score, ok := r.Dimensions[name]; ok {
				fmt.Fprintf(w, "  %-13s %3d\n", name, score)
			}
		}
		fmt.Fprintf(w, "- DQS: %d (%s)\n", r.DQS, r.Grade)
		fmt.Fprintf(w, "- %s\n", r.Summary)
		if r.Elapsed > 0 {
			fmt.Fprintf(w, "- Processed in %v\n", r.Elapsed.Round(time.Millisecond))
		}
	}
}
