package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pacectl/pacectl/internal/cib"
	"github.com/pacectl/pacectl/internal/differ"
	"github.com/pacectl/pacectl/internal/enrich"
	"github.com/pacectl/pacectl/internal/observability"
	"github.com/pacectl/pacectl/internal/observability/logging"
	otelobs "github.com/pacectl/pacectl/internal/observability/otel"
	"github.com/pacectl/pacectl/internal/observability/receipt"
	"github.com/pacectl/pacectl/internal/sbd"
	"github.com/pacectl/pacectl/internal/schema"
	"github.com/pacectl/pacectl/internal/validate"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

const defaultCibPath = "cib.yaml"

// propertyCmd groups the cluster property subcommands.
var propertyCmd = &cobra.Command{
	Use:   "property",
	Short: "Manage cluster properties",
}

var (
	propertyCibFlag    string
	propertyFormatFlag string
)

var propertySetCmd = &cobra.Command{
	Use:   "set NAME=VALUE...",
	Short: "Validate and set cluster properties",
	Long: `Validates the proposed properties against agent metadata and the
watchdog subsystem state, then writes them to the CIB snapshot.

An empty value unsets the property. Forceable validation errors can be
downgraded to warnings with --force; protected properties are refused
regardless.

Examples:
  pacectl property set maintenance-mode=true
  pacectl property set stonith-watchdog-timeout=10 --sbd-config /etc/sysconfig/sbd
  pacectl property set batch-limit=abc --force`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runPropertySet,
	SilenceUsage: true,
}

var propertyUnsetCmd = &cobra.Command{
	Use:   "unset NAME...",
	Short: "Validate and remove cluster properties",
	Long: `Validates the removal of the named properties from the configured
set, then deletes them from the CIB snapshot.

Examples:
  pacectl property unset maintenance-mode
  pacectl property unset no-quorum-policy batch-limit --force`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runPropertyUnset,
	SilenceUsage: true,
}

var propertyListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List configured cluster properties",
	RunE:         runPropertyList,
	SilenceUsage: true,
}

var propertyDiffCmd = &cobra.Command{
	Use:   "diff FILE",
	Short: "Compare configured properties against a proposed file",
	Long: `Diffs the configured cluster properties against a YAML file of
proposed name: value pairs and reports every difference in
human-readable terms.

Exits 1 when the property sets differ.

Example:
  pacectl property diff proposed-properties.yaml`,
	Args:         cobra.ExactArgs(1),
	RunE:         runPropertyDiff,
	SilenceUsage: true,
}

var (
	setForceFlag       bool
	setSbdConfigFlag   string
	unsetForceFlag     bool
	unsetSbdConfigFlag string
)

func init() {
	pf := propertyCmd.PersistentFlags()
	pf.StringVar(&propertyCibFlag, "cib", defaultCibPath, "Path to the CIB snapshot file")
	pf.StringVar(&propertyFormatFlag, "format", "text", "Output format: text or json")

	propertySetCmd.Flags().BoolVarP(&setForceFlag, "force", "f", false, "Downgrade forceable validation errors to warnings")
	propertySetCmd.Flags().StringVar(&setSbdConfigFlag, "sbd-config", sbd.DefaultSysconfigPath, "Path to the sbd sysconfig file")
	propertyUnsetCmd.Flags().BoolVarP(&unsetForceFlag, "force", "f", false, "Downgrade forceable validation errors to warnings")
	propertyUnsetCmd.Flags().StringVar(&unsetSbdConfigFlag, "sbd-config", sbd.DefaultSysconfigPath, "Path to the sbd sysconfig file")

	propertyCmd.AddCommand(propertySetCmd)
	propertyCmd.AddCommand(propertyUnsetCmd)
	propertyCmd.AddCommand(propertyListCmd)
	propertyCmd.AddCommand(propertyDiffCmd)
}

// GetPropertyCmd export
func GetPropertyCmd() *cobra.Command {
	return propertyCmd
}

// parseAssignments splits NAME=VALUE arguments. An empty value is legal
// and means "unset".
func parseAssignments(args []string) (map[string]string, error) {
	proposed := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid argument '%s', expected NAME=VALUE", arg)
		}
		proposed[name] = value
	}
	return proposed, nil
}

// loadSnapshot reads the CIB snapshot, or starts from an empty one when
// the file does not exist yet.
func loadSnapshot(store *cib.FileStore) (*cib.Snapshot, error) {
	if !store.Exists() {
		return &cib.Snapshot{}, nil
	}
	return store.Load()
}

func runPropertySet(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	sess := receipt.Start(ctx, "pacectl property set", os.Args[1:])
	var receiptOpts []receipt.Option

	defer func() {
		receiptOpts = append(receiptOpts, receipt.WithCib(propertyCibFlag))
		_ = sess.Finish(err, receiptOpts...)
	}()

	log := logging.From(ctx)
	start := time.Now()

	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "pacectl.property.set",
			trace.WithAttributes(
				attribute.String("pacectl.op_id", observability.OpID(ctx)),
				attribute.String("pacectl.command", "property set"),
				attribute.String("pacectl.cib", propertyCibFlag),
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

	log.Event(ctx, "property.set.start", nil)

	var resultStatus string
	defer func() {
		log.Event(ctx, "property.set.complete", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	if propertyFormatFlag != "text" && propertyFormatFlag != "json" {
		resultStatus = "fail"
		return fmt.Errorf("invalid format: %s (use text or json)", propertyFormatFlag)
	}

	proposed, parseErr := parseAssignments(args)
	if parseErr != nil {
		resultStatus = "fail"
		return parseErr
	}

	store := cib.NewFileStore(propertyCibFlag)
	snapshot, loadErr := loadSnapshot(store)
	if loadErr != nil {
		resultStatus = "fail"
		return loadErr
	}

	sources, sourcesErr := schema.BuiltinSources()
	if sourcesErr != nil {
		resultStatus = "fail"
		return fmt.Errorf("failed to load property metadata: %w", sourcesErr)
	}

	set := snapshot.DefaultPropertySet()
	querier := sbd.NewSysconfigQuerier(setSbdConfigFlag)
	items := validate.Set(sources, set.ID, querier, proposed, setForceFlag)

	pipeline := enrich.NewPipeline(store, cmd.ErrOrStderr())
	items = enrichItems(ctx, pipeline, items)

	result := BuildValidationResult(items)
	receiptOpts = append(receiptOpts, receipt.WithValidation(
		result.Errors, result.Warnings, setForceFlag, reportCodes(items),
	))

	if propertyFormatFlag == "json" {
		jsonOutput, jsonErr := FormatJSONOutput(result)
		if jsonErr != nil {
			resultStatus = "fail"
			return fmt.Errorf("failed to format JSON output: %w", jsonErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), FormatReportsText(items))
	}

	if result.Errors > 0 {
		resultStatus = "fail"
		if propertyFormatFlag == "json" {
			// Exit without a returned error so cobra does not corrupt the
			// JSON already written to stdout.
			os.Exit(1)
		}
		return fmt.Errorf("invalid cluster properties: %d error(s)", result.Errors)
	}

	added, removed, updated, applyErr := applyAssignments(store, snapshot, proposed)
	if applyErr != nil {
		resultStatus = "fail"
		return applyErr
	}
	receiptOpts = append(receiptOpts, receipt.WithChanges(
		added, removed, updated,
		fmt.Sprintf("%d added, %d removed, %d updated", added, removed, updated),
	))

	resultStatus = "success"
	return nil
}

// applyAssignments merges the validated assignments into the snapshot's
// default property set and saves it. An empty value deletes the entry.
func applyAssignments(store *cib.FileStore, snapshot *cib.Snapshot, proposed map[string]string) (added, removed, updated int, err error) {
	set := snapshot.DefaultPropertySet()

	options := make(map[string]string, len(set.Options)+len(proposed))
	for name, value := range set.Options {
		options[name] = value
	}
	for name, value := range proposed {
		if value == "" {
			delete(options, name)
			continue
		}
		options[name] = value
	}

	diff, diffErr := differ.CompareProperties(set.Options, options)
	if diffErr != nil {
		return 0, 0, 0, diffErr
	}
	for _, change := range diff.Changes {
		switch change.Type {
		case differ.ChangeAdded:
			added++
		case differ.ChangeRemoved:
			removed++
		case differ.ChangeUpdated:
			updated++
		}
	}

	set.Options = options
	if len(snapshot.PropertySets) > 0 {
		snapshot.PropertySets[0] = set
	} else {
		snapshot.PropertySets = append(snapshot.PropertySets, set)
	}

	if err := store.Save(snapshot); err != nil {
		return 0, 0, 0, err
	}
	return added, removed, updated, nil
}

func runPropertyUnset(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	sess := receipt.Start(ctx, "pacectl property unset", os.Args[1:])
	var receiptOpts []receipt.Option

	defer func() {
		receiptOpts = append(receiptOpts, receipt.WithCib(propertyCibFlag))
		_ = sess.Finish(err, receiptOpts...)
	}()

	log := logging.From(ctx)
	start := time.Now()

	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "pacectl.property.unset",
			trace.WithAttributes(
				attribute.String("pacectl.op_id", observability.OpID(ctx)),
				attribute.String("pacectl.command", "property unset"),
				attribute.String("pacectl.cib", propertyCibFlag),
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

	log.Event(ctx, "property.unset.start", nil)

	var resultStatus string
	defer func() {
		log.Event(ctx, "property.unset.complete", map[string]any{
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	if propertyFormatFlag != "text" && propertyFormatFlag != "json" {
		resultStatus = "fail"
		return fmt.Errorf("invalid format: %s (use text or json)", propertyFormatFlag)
	}

	store := cib.NewFileStore(propertyCibFlag)
	snapshot, loadErr := loadSnapshot(store)
	if loadErr != nil {
		resultStatus = "fail"
		return loadErr
	}

	set := snapshot.DefaultPropertySet()
	querier := sbd.NewSysconfigQuerier(unsetSbdConfigFlag)
	items := validate.Remove(snapshot.ConfiguredOptionNames(), set.ID, querier, args, unsetForceFlag)

	pipeline := enrich.NewPipeline(store, cmd.ErrOrStderr())
	items = enrichItems(ctx, pipeline, items)

	result := BuildValidationResult(items)
	receiptOpts = append(receiptOpts, receipt.WithValidation(
		result.Errors, result.Warnings, unsetForceFlag, reportCodes(items),
	))

	if propertyFormatFlag == "json" {
		jsonOutput, jsonErr := FormatJSONOutput(result)
		if jsonErr != nil {
			resultStatus = "fail"
			return fmt.Errorf("failed to format JSON output: %w", jsonErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	} else {
		fmt.Fprint(cmd.OutOrStdout(), FormatReportsText(items))
	}

	if result.Errors > 0 {
		resultStatus = "fail"
		if propertyFormatFlag == "json" {
			os.Exit(1)
		}
		return fmt.Errorf("cannot remove cluster properties: %d error(s)", result.Errors)
	}

	removed := 0
	for _, name := range args {
		if _, ok := set.Options[name]; ok {
			delete(set.Options, name)
			removed++
		}
	}
	if len(snapshot.PropertySets) > 0 {
		snapshot.PropertySets[0] = set
	} else if removed > 0 {
		snapshot.PropertySets = append(snapshot.PropertySets, set)
	}
	if removed > 0 {
		if saveErr := store.Save(snapshot); saveErr != nil {
			resultStatus = "fail"
			return saveErr
		}
	}
	receiptOpts = append(receiptOpts, receipt.WithChanges(
		0, removed, 0, fmt.Sprintf("%d removed", removed),
	))

	resultStatus = "success"
	return nil
}

func runPropertyList(cmd *cobra.Command, args []string) error {
	store := cib.NewFileStore(propertyCibFlag)
	snapshot, err := loadSnapshot(store)
	if err != nil {
		return err
	}
	set := snapshot.DefaultPropertySet()

	if propertyFormatFlag == "json" {
		jsonOutput, jsonErr := FormatJSONOutput(set)
		if jsonErr != nil {
			return fmt.Errorf("failed to format JSON output: %w", jsonErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cluster Properties: %s\n", set.ID)
	names := make([]string, 0, len(set.Options))
	for name := range set.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s=%s\n", name, set.Options[name])
	}
	return nil
}

func runPropertyDiff(cmd *cobra.Command, args []string) error {
	store := cib.NewFileStore(propertyCibFlag)
	snapshot, err := loadSnapshot(store)
	if err != nil {
		return err
	}

	proposed, err := loadProposedProperties(args[0])
	if err != nil {
		return err
	}

	result, err := differ.CompareProperties(snapshot.DefaultPropertySet().Options, proposed)
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	if propertyFormatFlag == "json" {
		jsonOutput, jsonErr := FormatJSONOutput(result)
		if jsonErr != nil {
			return fmt.Errorf("failed to format JSON output: %w", jsonErr)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		if result.HasChanges {
			os.Exit(1)
		}
		return nil
	}

	if !result.HasChanges {
		fmt.Fprintf(cmd.OutOrStdout(), "%s✓ No differences found%s\n", colorGreen, colorReset)
		return nil
	}

	lines := differ.Translate(result.Changes)
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintf(cmd.OutOrStdout(), "%s• %s%s\n", colorYellow, line, colorReset)
	}

	// Exit 1 = the property sets differ
	os.Exit(1)
	return nil
}

// loadProposedProperties reads a YAML file of name: value pairs.
func loadProposedProperties(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposed properties: %w", err)
	}
	var proposed map[string]string
	if err := yaml.Unmarshal(data, &proposed); err != nil {
		return nil, fmt.Errorf("failed to parse proposed properties %s: %w", path, err)
	}
	return proposed, nil
}
