package ports

import (
	"github.com/qichaozhao/ab-testing/domain/experiment"
)

// OutcomeReaderPort loads recorded per-subject outcome sequences from an
// external data source, keyed by column name.
type OutcomeReaderPort interface {
	// ReadOutcomes returns the named outcome columns in the order requested
	ReadOutcomes(columns ...string) (map[string]experiment.Outcomes, error)
}
