package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pacectl/pacectl/internal/enrich"
	"github.com/pacectl/pacectl/internal/reports"
)

// ANSI color codes
const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// ValidationResult output structure
type ValidationResult struct {
	Reports  []ReportOutputItem `json:"reports"`
	Errors   int                `json:"errors"`
	Warnings int                `json:"warnings"`
	Outcome  string             `json:"outcome"` // "PASS" or "FAIL"
}

// ReportOutputItem detail
type ReportOutputItem struct {
	Severity  string `json:"severity"`
	Code      string `json:"code"`
	ForceCode string `json:"forceCode,omitempty"`
	Message   string `json:"message"`
}

// BuildValidationResult from the final report stream.
func BuildValidationResult(items []reports.Item) *ValidationResult {
	result := &ValidationResult{
		Reports: []ReportOutputItem{},
		Outcome: "PASS",
	}

	for _, item := range items {
		result.Reports = append(result.Reports, ReportOutputItem{
			Severity:  string(item.Severity),
			Code:      string(item.Code),
			ForceCode: item.ForceCode,
			Message:   item.Text(),
		})
		if item.Severity == reports.SeverityError {
			result.Errors++
		} else {
			result.Warnings++
		}
	}

	if result.Errors > 0 {
		result.Outcome = "FAIL"
	}
	return result
}

// FormatReportsText human readable, one line per item.
func FormatReportsText(items []reports.Item) string {
	var sb strings.Builder
	for _, item := range items {
		if item.Severity == reports.SeverityError {
			sb.WriteString(fmt.Sprintf("%sError: %s%s", colorRed, item.Text(), colorReset))
			if item.Forceable() {
				sb.WriteString(", use --force to override")
			}
		} else {
			sb.WriteString(fmt.Sprintf("%sWarning: %s%s", colorYellow, item.Text(), colorReset))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatJSONOutput raw json
func FormatJSONOutput(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// enrichItems runs every item through the enrichment pipeline and keeps
// the survivors.
func enrichItems(ctx context.Context, pipeline *enrich.Pipeline, items []reports.Item) []reports.Item {
	var out []reports.Item
	for _, item := range items {
		if processed := pipeline.Process(ctx, item); processed != nil {
			out = append(out, *processed)
		}
	}
	return out
}

// reportCodes for the audit receipt.
func reportCodes(items []reports.Item) []string {
	codes := make([]string, 0, len(items))
	for _, item := range items {
		codes = append(codes, string(item.Code))
	}
	return codes
}
