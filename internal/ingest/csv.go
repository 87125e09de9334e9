package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/dqscore/dqscore/internal/scoring"
)

// Options controls CSV ingestion.
type Options struct {
	Delimiter rune // 0 means sniff from a sample
	MaxRows   int  // 0 means unlimited
}

// Dataset is the materialized form the scoring engine consumes: rows plus
// the header order the engine cannot recover from map keys.
type Dataset struct {
	Path    string
	Columns []string
	Rows    []scoring.Row
}

// sniffSize is how many bytes the delimiter detector samples.
const sniffSize = 8 * 1024

// ReadFile loads a CSV file into a Dataset.
func ReadFile(path string, opts Options) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	ds, err := Read(file, opts)
	if err != nil {
		return nil, err
	}
	ds.Path = path
	return ds, nil
}

// Read loads CSV text into a Dataset. An input with no header row yields
// an empty Dataset rather than an error; the engine defines scores for
// empty data. Short records pad with empty cells and long records
// truncate to the header width, so the engine never sees ragged rows.
func Read(r io.Reader, opts Options) (*Dataset, error) {
	buf := bufio.NewReader(r)

	delim := opts.Delimiter
	if delim == 0 {
		sample, _ := buf.Peek(sniffSize)
		delim = DetectDelimiter(sample)
	}

	reader := csv.NewReader(buf)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	ds := &Dataset{Columns: header}
	truncated := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Warn().Int("line", parseErr.Line).Err(parseErr.Err).Msg("skipping malformed record")
				continue
			}
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(scoring.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)

		if opts.MaxRows > 0 && len(ds.Rows) >= opts.MaxRows {
			truncated = opts.MaxRows
			break
		}
	}
	if truncated > 0 {
		log.Debug().Int("max_rows", truncated).Msg("row cap reached, truncating dataset")
	}
	return ds, nil
}

// DetectDelimiter picks the most frequent candidate delimiter within the
// first few lines of a sample. Defaults to comma when nothing stands out.
func DetectDelimiter(sample []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	counts := make(map[rune]int, len(candidates))

	lines := 0
	for i := 0; i < len(sample) && lines < 5; i++ {
		if sample[i] == '\n' {
			lines++
		}
		for _, delim := range candidates {
			if sample[i] == byte(delim) {
				counts[delim]++
			}
		}
	}

	best := ','
	max := 0
	for _, delim := range candidates {
		if counts[delim] > max {
			max = counts[delim]
			best = delim
		}
	}
	return best
}
