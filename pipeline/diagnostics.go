package pipeline

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// Diagnostics records locally-absorbed errors and coverage counters for
// one run, so a caller can report partial coverage. Absorbed errors
// never change the produced script beyond the grants they omit.
type Diagnostics struct {
	RunID string

	ToolsTotal      int
	ToolsUnknown    int
	ToolsIncomplete int

	DefinitionsFetched    int
	DefinitionsMissing    int
	DefinitionsUnparsable int
	StagePathsMalformed   int

	SchemaFindings []string

	absorbed *multierror.Error
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{RunID: uuid.NewString()}
}

func (d *Diagnostics) absorb(err error) {
	d.absorbed = multierror.Append(d.absorbed, err)
}

// Err returns every locally-absorbed error combined, or nil when the
// run had full coverage.
func (d *Diagnostics) Err() error {
	return d.absorbed.ErrorOrNil()
}
