package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pacectl/pacectl/internal/cib"
	"github.com/pacectl/pacectl/internal/observability"
	"github.com/pacectl/pacectl/internal/observability/logging"
	otelobs "github.com/pacectl/pacectl/internal/observability/otel"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// constraintCmd groups the constraint subcommands.
var constraintCmd = &cobra.Command{
	Use:   "constraint",
	Short: "Inspect cluster constraints",
}

var constraintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured constraints",
	Long: `Lists every configured constraint by category, in the same text
form used by duplicate-constraint diagnostics.

With --rules, rule expressions on location constraints are evaluated
against the node attributes in the snapshot and annotated as in_effect,
not_in_effect, or unknown.

Examples:
  pacectl constraint list
  pacectl constraint list --rules --full`,
	RunE:         runConstraintList,
	SilenceUsage: true,
}

var (
	constraintCibFlag    string
	constraintRulesFlag  bool
	constraintFullFlag   bool
	constraintFormatFlag string
)

func init() {
	constraintListCmd.Flags().StringVar(&constraintCibFlag, "cib", defaultCibPath, "Path to the CIB snapshot file")
	constraintListCmd.Flags().BoolVar(&constraintRulesFlag, "rules", false, "Evaluate rule expressions against node attributes")
	constraintListCmd.Flags().BoolVar(&constraintFullFlag, "full", false, "Include constraint ids")
	constraintListCmd.Flags().StringVar(&constraintFormatFlag, "format", "text", "Output format: text or json")

	constraintCmd.AddCommand(constraintListCmd)
}

// GetConstraintCmd export
func GetConstraintCmd() *cobra.Command {
	return constraintCmd
}

func runConstraintList(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	log := logging.From(ctx)
	start := time.Now()

	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "pacectl.constraint.list",
			trace.WithAttributes(
				attribute.String("pacectl.op_id", observability.OpID(ctx)),
				attribute.String("pacectl.command", "constraint list"),
				attribute.String("pacectl.cib", constraintCibFlag),
			))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed")
			} else {
				span.SetStatus(codes.Ok, "success")
			}
			span.End()
		}()
	}

	log.Event(ctx, "constraint.list.start", nil)

	var resultStatus string
	defer func() {
		log.Event(ctx, "constraint.list.complete", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	if constraintFormatFlag != "text" && constraintFormatFlag != "json" {
		resultStatus = "fail"
		return fmt.Errorf("invalid format: %s (use text or json)", constraintFormatFlag)
	}

	store := cib.NewFileStore(constraintCibFlag)
	constraints, fetchErr := store.FetchAll(ctx, constraintRulesFlag)
	if fetchErr != nil {
		resultStatus = "fail"
		var loadErr *cib.LoadError
		if errors.As(fetchErr, &loadErr) && loadErr.Output != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), loadErr.Output)
		}
		return fetchErr
	}

	if constraintFormatFlag == "json" {
		jsonOutput, jsonErr := FormatJSONOutput(constraints)
		if jsonErr != nil {
			resultStatus = "fail"
			return fmt.Errorf("failed to format JSON output: %w", jsonErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		resultStatus = "success"
		return nil
	}

	printConstraints(cmd.OutOrStdout(), constraints, constraintFullFlag)
	resultStatus = "success"
	return nil
}

// printConstraints renders every category with a header, skipping empty
// ones.
func printConstraints(w io.Writer, constraints *cib.Constraints, verbose bool) {
	printGroup := func(header string, blocks [][]string) {
		if len(blocks) == 0 {
			return
		}
		fmt.Fprintln(w, header)
		for _, lines := range blocks {
			for _, line := range lines {
				fmt.Fprintln(w, "  "+line)
			}
		}
	}

	var location [][]string
	for _, c := range constraints.Location {
		location = append(location, cib.LocationToText(c, verbose))
	}
	for _, c := range constraints.LocationSet {
		location = append(location, cib.LocationSetToText(c, verbose))
	}
	printGroup("Location Constraints:", location)

	var colocation [][]string
	for _, c := range constraints.Colocation {
		colocation = append(colocation, cib.ColocationToText(c, verbose))
	}
	for _, c := range constraints.ColocationSet {
		colocation = append(colocation, cib.ColocationSetToText(c, verbose))
	}
	printGroup("Colocation Constraints:", colocation)

	var order [][]string
	for _, c := range constraints.Order {
		order = append(order, cib.OrderToText(c, verbose))
	}
	for _, c := range constraints.OrderSet {
		order = append(order, cib.OrderSetToText(c, verbose))
	}
	printGroup("Ordering Constraints:", order)

	var ticket [][]string
	for _, c := range constraints.Ticket {
		ticket = append(ticket, cib.TicketToText(c, verbose))
	}
	for _, c := range constraints.TicketSet {
		ticket = append(ticket, cib.TicketSetToText(c, verbose))
	}
	printGroup("Ticket Constraints:", ticket)
}
