package scoring

import (
	"strings"
	"time"
)

// dateKeywords mark candidate timestamp columns by name.
var dateKeywords = []string{"date", "time", "timestamp", "created", "updated", "modified"}

// dateLayouts is the lenient parse set: anything a common tabular export
// produces. Order matters only for parse speed, not correctness.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// dateSampleRows bounds how many rows the detector inspects per column.
const dateSampleRows = 10

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DetectDateColumn picks the column the Timeliness dimension should read.
// A column qualifies when its lower-cased name contains a date keyword and
// more than half of the values sampled from the first 10 rows parse as
// dates. The first qualifying column in definition order wins; ties break
// on order, never on name specificity.
func DetectDateColumn(rows []Row, cols []string) (string, bool) {
	if len(rows) == 0 {
		return "", false
	}
	sample := rows
	if len(sample) > dateSampleRows {
		sample = sample[:dateSampleRows]
	}
	for _, col := range cols {
		name := strings.ToLower(col)
		keyword := false
		for _, kw := range dateKeywords {
			if strings.Contains(name, kw) {
				keyword = true
				break
			}
		}
		if !keyword {
			continue
		}
		parsed := 0
		for _, r := range sample {
			if _, ok := parseDate(cell(r, col)); ok {
				parsed++
			}
		}
		if parsed*2 > len(sample) {
			return col, true
		}
	}
	return "", false
}
