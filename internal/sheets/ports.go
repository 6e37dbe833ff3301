package sheets

import (
	"context"

	"biglabo/internal/core"
)

// ResultWriter is the outbound port for publishing a computed result table.
// The worker appends one block per saved configuration.
type ResultWriter interface {
	// AppendResults writes the result rows of a saved configuration,
	// labelled with its name.
	AppendResults(ctx context.Context, name string, rows []core.ResultRow) error
}
