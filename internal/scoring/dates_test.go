package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDateColumn(t *testing.T) {
	t.Run("keyword and parsable values", func(t *testing.T) {
		rows := []Row{
			{"id": "1", "created_at": "2024-01-15"},
			{"id": "2", "created_at": "2024-01-16"},
		}
		col, ok := DetectDateColumn(rows, []string{"id", "created_at"})
		assert.True(t, ok)
		assert.Equal(t, "created_at", col)
	})

	t.Run("keyword without parsable values does not qualify", func(t *testing.T) {
		rows := []Row{
			{"date": "soon", "modified": "2024-02-01"},
			{"date": "later", "modified": "2024-02-02"},
		}
		col, ok := DetectDateColumn(rows, []string{"date", "modified"})
		assert.True(t, ok)
		assert.Equal(t, "modified", col)
	})

	t.Run("parsable values without keyword do not qualify", func(t *testing.T) {
		rows := []Row{{"notes": "2024-01-15"}, {"notes": "2024-01-16"}}
		_, ok := DetectDateColumn(rows, []string{"notes"})
		assert.False(t, ok)
	})

	t.Run("first qualifying column in definition order wins", func(t *testing.T) {
		rows := []Row{
			{"updated": "2024-03-01", "created": "2024-01-01"},
			{"updated": "2024-03-02", "created": "2024-01-02"},
		}
		col, ok := DetectDateColumn(rows, []string{"updated", "created"})
		assert.True(t, ok)
		assert.Equal(t, "updated", col)
	})

	t.Run("more than half of the sample must parse", func(t *testing.T) {
		// 1 of 2 sampled values parses: not strictly more than half.
		rows := []Row{{"date": "2024-01-15"}, {"date": "n/a"}}
		_, ok := DetectDateColumn(rows, []string{"date"})
		assert.False(t, ok)

		// 2 of 3 parse.
		rows = append(rows, Row{"date": "2024-01-16"})
		col, ok := DetectDateColumn(rows, []string{"date"})
		assert.True(t, ok)
		assert.Equal(t, "date", col)
	})

	t.Run("only the first ten rows are sampled", func(t *testing.T) {
		rows := make([]Row, 0, 20)
		for i := 0; i < 10; i++ {
			rows = append(rows, Row{"timestamp": "garbage"})
		}
		for i := 0; i < 10; i++ {
			rows = append(rows, Row{"timestamp": "2024-01-15"})
		}
		_, ok := DetectDateColumn(rows, []string{"timestamp"})
		assert.False(t, ok)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, ok := DetectDateColumn(nil, []string{"date"})
		assert.False(t, ok)
	})
}

func TestParseDate(t *testing.T) {
	valid := []string{
		"2024-01-15",
		"2024-01-15T10:30:00Z",
		"2024-01-15 10:30:00",
		"01/15/2024",
		"15-Jan-2024",
		"2024/01/15",
	}
	for _, v := range valid {
		_, ok := parseDate(v)
		assert.True(t, ok, "expected %q to parse", v)
	}

	invalid := []string{"", "tomorrow", "123", "15.01.2024.extra"}
	for _, v := range invalid {
		_, ok := parseDate(v)
		assert.False(t, ok, "expected %q not to parse", v)
	}
}
