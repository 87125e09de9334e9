package scoring

import "time"

// Engine runs the full dimension pass over a dataset. It holds no state
// across calls; the only injectable piece is the clock the Timeliness
// dimension reads, so tests and reproducible pipelines can freeze "now".
type Engine struct {
	now func() time.Time
}

// NewEngine returns an engine on the system clock.
func NewEngine() *Engine {
	return NewEngineWithClock(time.Now)
}

// NewEngineWithClock returns an engine whose Timeliness dimension reads
// the given clock.
func NewEngineWithClock(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// ComputeAll scores every dimension for one dataset. cols carries the
// column order from ingestion; pass nil to fall back to the sorted keys
// of the first row. Timeliness is always present: 50 when no date column
// is detected.
func (e *Engine) ComputeAll(rows []Row, cols []string) Scores {
	if len(cols) == 0 {
		cols = Columns(rows)
	}
	scores := Scores{
		DimCompleteness: Completeness(rows, cols),
		DimUniqueness:   Uniqueness(rows, cols),
		DimConsistency:  Consistency(rows, cols),
		DimValidity:     Validity(rows, cols),
	}
	dateCol, _ := DetectDateColumn(rows, cols)
	scores[DimTimeliness] = Timeliness(rows, dateCol, e.now())
	return scores
}

// Score is ComputeAll followed by ComputeDQS in one call.
func (e *Engine) Score(rows []Row, cols []string, weights Weights) Composite {
	return ComputeDQS(e.ComputeAll(rows, cols), weights)
}
