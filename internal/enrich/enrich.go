// Package enrich rewrites the diagnostic stream just before display,
// attaching richer context to duplicate-constraint reports. Enrichment is
// best-effort and never disturbs the primary report flow.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pacectl/pacectl/internal/cib"
	"github.com/pacectl/pacectl/internal/reports"
)

const indentStep = "  "

// Pipeline transforms report items one at a time. It is scoped to one
// enrichment session: the constraint configuration is fetched at most
// once and cached for the remainder of the session.
type Pipeline struct {
	store       cib.Store
	side        io.Writer
	constraints *cib.Constraints
}

// NewPipeline wires a pipeline to the constraint store and the side
// diagnostic channel (normally stderr).
func NewPipeline(store cib.Store, side io.Writer) *Pipeline {
	return &Pipeline{store: store, side: side}
}

// Process transforms one item. A nil result means the item is dropped
// from the stream; otherwise the returned item is displayed in its place.
func (p *Pipeline) Process(ctx context.Context, item reports.Item) *reports.Item {
	switch item.Code {
	case reports.CodeDuplicateConstraintsListDeprecated:
		// Superseded structured format, replaced by
		// DUPLICATE_CONSTRAINTS_EXIST plus this enrichment.
		return nil
	case reports.CodeDuplicateConstraintsExist:
		p.describeDuplicates(ctx, item.Payload.ConstraintIDs)
	}
	return &item
}

// describeDuplicates prints the full text of every constraint named in
// the diagnostic. Fetch failures degrade to a bare id list; the failure's
// own output and embedded reports are surfaced but never propagated.
func (p *Pipeline) describeDuplicates(ctx context.Context, ids []string) {
	if p.constraints == nil {
		constraints, err := p.store.FetchAll(ctx, false)
		if err != nil {
			p.reportFetchFailure(err, ids)
			return
		}
		p.constraints = constraints
	}

	fmt.Fprintln(p.side, "Duplicate constraints:")
	p.printMatching(ids)
}

func (p *Pipeline) printMatching(ids []string) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	match := func(id string) bool {
		_, ok := wanted[id]
		return ok
	}

	for _, c := range p.constraints.Location {
		if match(c.ID) {
			p.printIndented(cib.LocationToText(c, true))
		}
	}
	for _, c := range p.constraints.LocationSet {
		if match(c.ID) {
			p.printIndented(cib.LocationSetToText(c, true))
		}
	}
	for _, c := range p.constraints.Colocation {
		if match(c.ID) {
			p.printIndented(cib.ColocationToText(c, true))
		}
	}
	for _, c := range p.constraints.ColocationSet {
		if match(c.ID) {
			p.printIndented(cib.ColocationSetToText(c, true))
		}
	}
	for _, c := range p.constraints.Order {
		if match(c.ID) {
			p.printIndented(cib.OrderToText(c, true))
		}
	}
	for _, c := range p.constraints.OrderSet {
		if match(c.ID) {
			p.printIndented(cib.OrderSetToText(c, true))
		}
	}
	for _, c := range p.constraints.Ticket {
		if match(c.ID) {
			p.printIndented(cib.TicketToText(c, true))
		}
	}
	for _, c := range p.constraints.TicketSet {
		if match(c.ID) {
			p.printIndented(cib.TicketSetToText(c, true))
		}
	}
}

func (p *Pipeline) printIndented(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(p.side, indentStep+line)
	}
}

// reportFetchFailure prints whatever the failure carried and falls back
// to a bare id list. The next duplicate diagnostic will retry the fetch.
func (p *Pipeline) reportFetchFailure(err error, ids []string) {
	var loadErr *cib.LoadError
	if errors.As(err, &loadErr) {
		if loadErr.Output != "" {
			fmt.Fprintln(p.side, loadErr.Output)
		}
		for _, item := range loadErr.Items {
			fmt.Fprintf(p.side, "%s: %s\n", severityLabel(item.Severity), item.Text())
		}
	}
	fmt.Fprintln(p.side, "Duplicate constraints: "+reports.FormatList(ids))
}

func severityLabel(severity reports.Severity) string {
	if severity == reports.SeverityWarning {
		return "Warning"
	}
	return "Error"
}
