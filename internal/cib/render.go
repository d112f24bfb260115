package cib

import (
	"fmt"
	"strings"
)

// Text rendering of constraint records, one shape per category, used by
// `constraint list` and the duplicate-constraint enrichment.

func idSuffix(id string, verbose bool) string {
	if !verbose {
		return ""
	}
	return fmt.Sprintf(" (id: %s)", id)
}

func scoreText(score string) string {
	if score == "" {
		return "INFINITY"
	}
	return score
}

// LocationToText renders a plain location constraint.
func LocationToText(c LocationConstraint, verbose bool) []string {
	target := fmt.Sprintf("resource '%s'", c.Resource)
	if c.ResourcePattern != "" {
		target = fmt.Sprintf("resource pattern '%s'", c.ResourcePattern)
	}

	verb := "prefers"
	if strings.HasPrefix(c.Score, "-") {
		verb = "avoids"
	}

	lines := []string{fmt.Sprintf(
		"%s %s node '%s' with score %s%s",
		target, verb, c.Node, scoreText(c.Score), idSuffix(c.ID, verbose),
	)}
	if c.Rule != "" {
		rule := fmt.Sprintf("  rule: %s", c.Rule)
		if c.RuleInEffect != "" {
			rule += fmt.Sprintf(" (%s)", c.RuleInEffect)
		}
		lines = append(lines, rule)
	}
	return lines
}

// LocationSetToText renders a set-form location constraint.
func LocationSetToText(c LocationSetConstraint, verbose bool) []string {
	lines := []string{fmt.Sprintf(
		"resource set prefers node '%s' with score %s%s",
		c.Node, scoreText(c.Score), idSuffix(c.ID, verbose),
	)}
	lines = append(lines, resourceSetLines(c.Sets, verbose)...)
	if c.Rule != "" {
		rule := fmt.Sprintf("  rule: %s", c.Rule)
		if c.RuleInEffect != "" {
			rule += fmt.Sprintf(" (%s)", c.RuleInEffect)
		}
		lines = append(lines, rule)
	}
	return lines
}

// ColocationToText renders a plain colocation constraint.
func ColocationToText(c ColocationConstraint, verbose bool) []string {
	first := c.Resource
	if c.Role != "" {
		first = fmt.Sprintf("%s (%s)", c.Resource, c.Role)
	}
	second := c.WithResource
	if c.WithRole != "" {
		second = fmt.Sprintf("%s (%s)", c.WithResource, c.WithRole)
	}
	return []string{fmt.Sprintf(
		"resource '%s' with resource '%s' score %s%s",
		first, second, scoreText(c.Score), idSuffix(c.ID, verbose),
	)}
}

// ColocationSetToText renders a set-form colocation constraint.
func ColocationSetToText(c ColocationSetConstraint, verbose bool) []string {
	lines := []string{fmt.Sprintf(
		"resource set colocation score %s%s", scoreText(c.Score), idSuffix(c.ID, verbose),
	)}
	return append(lines, resourceSetLines(c.Sets, verbose)...)
}

// OrderToText renders a plain order constraint.
func OrderToText(c OrderConstraint, verbose bool) []string {
	firstAction := c.FirstAction
	if firstAction == "" {
		firstAction = "start"
	}
	thenAction := c.ThenAction
	if thenAction == "" {
		thenAction = "start"
	}

	line := fmt.Sprintf(
		"%s resource '%s' then %s resource '%s'",
		firstAction, c.First, thenAction, c.Then,
	)
	if c.Kind != "" {
		line += fmt.Sprintf(" (kind: %s)", c.Kind)
	}
	if c.Symmetrical != "" {
		line += fmt.Sprintf(" (symmetrical: %s)", c.Symmetrical)
	}
	return []string{line + idSuffix(c.ID, verbose)}
}

// OrderSetToText renders a set-form order constraint.
func OrderSetToText(c OrderSetConstraint, verbose bool) []string {
	line := "resource set order"
	if c.Kind != "" {
		line += fmt.Sprintf(" (kind: %s)", c.Kind)
	}
	lines := []string{line + idSuffix(c.ID, verbose)}
	return append(lines, resourceSetLines(c.Sets, verbose)...)
}

// TicketToText renders a plain ticket constraint.
func TicketToText(c TicketConstraint, verbose bool) []string {
	line := fmt.Sprintf("resource '%s' depends on ticket '%s'", c.Resource, c.Ticket)
	if c.LossPolicy != "" {
		line += fmt.Sprintf(" (loss policy: %s)", c.LossPolicy)
	}
	return []string{line + idSuffix(c.ID, verbose)}
}

// TicketSetToText renders a set-form ticket constraint.
func TicketSetToText(c TicketSetConstraint, verbose bool) []string {
	line := fmt.Sprintf("resource set depends on ticket '%s'", c.Ticket)
	if c.LossPolicy != "" {
		line += fmt.Sprintf(" (loss policy: %s)", c.LossPolicy)
	}
	lines := []string{line + idSuffix(c.ID, verbose)}
	return append(lines, resourceSetLines(c.Sets, verbose)...)
}

func resourceSetLines(sets []ResourceSet, verbose bool) []string {
	lines := make([]string, 0, len(sets))
	for _, set := range sets {
		line := fmt.Sprintf("  set %s", strings.Join(set.Resources, " "))
		if set.Role != "" {
			line += fmt.Sprintf(" (role: %s)", set.Role)
		}
		if set.Action != "" {
			line += fmt.Sprintf(" (action: %s)", set.Action)
		}
		lines = append(lines, line+idSuffix(set.ID, verbose))
	}
	return lines
}
