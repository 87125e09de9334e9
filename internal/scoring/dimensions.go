package scoring

import (
	"math"
	"time"
	"unicode/utf8"
)

// Every calculator maps (rows, cols) to an integer in [0,100] and never
// fails: degenerate input degrades to a defined fallback instead.

// Completeness is the share of non-empty cells across the full
// rows x columns grid. Empty dataset or column set scores 0.
func Completeness(rows []Row, cols []string) int {
	if len(rows) == 0 || len(cols) == 0 {
		return 0
	}
	nonEmpty := 0
	for _, r := range rows {
		for _, c := range cols {
			if cell(r, c) != "" {
				nonEmpty++
			}
		}
	}
	total := len(rows) * len(cols)
	return clampScore(roundScore(float64(nonEmpty) / float64(total) * 100))
}

// Uniqueness averages the per-column distinct ratio over non-empty values.
// A column with no non-empty values has no duplicates, so it counts as
// fully unique.
func Uniqueness(rows []Row, cols []string) int {
	if len(rows) == 0 || len(cols) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range cols {
		distinct := make(map[string]struct{})
		n := 0
		for _, r := range rows {
			v := cell(r, c)
			if v == "" {
				continue
			}
			n++
			distinct[v] = struct{}{}
		}
		if n == 0 {
			sum += 100
			continue
		}
		sum += float64(len(distinct)) / float64(n) * 100
	}
	return clampScore(roundScore(sum / float64(len(cols))))
}

// Consistency scores format regularity per column via string-length
// statistics: mean absolute deviation of value lengths relative to the
// mean length. It is a proxy signal, not a format validator; downstream
// scores depend on this exact ratio.
func Consistency(rows []Row, cols []string) int {
	if len(rows) == 0 || len(cols) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range cols {
		sum += columnConsistency(rows, c)
	}
	return clampScore(roundScore(sum / float64(len(cols))))
}

func columnConsistency(rows []Row, col string) float64 {
	var lengths []float64
	for _, r := range rows {
		if v := cell(r, col); v != "" {
			lengths = append(lengths, float64(utf8.RuneCountInString(v)))
		}
	}
	// Zero or one value is vacuously consistent.
	if len(lengths) <= 1 {
		return 100
	}
	mean := 0.0
	for _, l := range lengths {
		mean += l
	}
	mean /= float64(len(lengths))

	dev := 0.0
	for _, l := range lengths {
		dev += math.Abs(l - mean)
	}
	dev /= float64(len(lengths))

	return math.Max(0, 100-(dev/math.Max(mean, 1))*100)
}

// Validity is presence of the key field: the share of rows whose first
// column holds a non-empty value. It is deliberately not a semantic or
// schema check.
func Validity(rows []Row, cols []string) int {
	if len(rows) == 0 || len(cols) == 0 {
		return 0
	}
	key := cols[0]
	valid := 0
	for _, r := range rows {
		if cell(r, key) != "" {
			valid++
		}
	}
	return clampScore(roundScore(float64(valid) / float64(len(rows)) * 100))
}

// Timeliness maps the mean age of values in the detected date column onto
// fixed freshness bands. No date column, an empty dataset, or no parsable
// value all mean "unknown", which scores a neutral 50 rather than 0.
func Timeliness(rows []Row, dateCol string, now time.Time) int {
	if dateCol == "" || len(rows) == 0 {
		return 50
	}
	totalHours := 0.0
	parsed := 0
	for _, r := range rows {
		v := cell(r, dateCol)
		if v == "" {
			continue
		}
		t, ok := parseDate(v)
		if !ok {
			continue
		}
		totalHours += now.Sub(t).Hours()
		parsed++
	}
	if parsed == 0 {
		return 50
	}
	mean := totalHours / float64(parsed)
	switch {
	case mean < 1:
		return 100
	case mean < 6:
		return 95
	case mean < 24:
		return 85
	case mean < 72:
		return 70
	case mean < 168:
		return 50
	default:
		return 30
	}
}

func roundScore(v float64) int {
	return int(math.Round(v))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
