package cib

import (
	"github.com/google/cel-go/cel"
)

// Rule in-effect states reported on location constraints
const (
	RuleInEffect    = "in_effect"
	RuleNotInEffect = "not_in_effect"
	RuleUnknown     = "unknown"
)

// ruleEnv builds the CEL environment rules are compiled in. Rules see the
// attributes of one node at a time.
func ruleEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("node", cel.MapType(cel.StringType, cel.StringType)),
	)
}

// evaluateConstraintRules fills RuleInEffect on every rule-bearing
// location constraint. A rule is in effect when its expression holds on
// at least one cluster node. Evaluation problems degrade to "unknown"
// rather than failing the fetch.
func evaluateConstraintRules(constraints *Constraints, nodes []Node) {
	env, err := ruleEnv()
	if err != nil {
		markAllUnknown(constraints)
		return
	}

	for n := range constraints.Location {
		if constraints.Location[n].Rule != "" {
			constraints.Location[n].RuleInEffect = evaluateRule(env, constraints.Location[n].Rule, nodes)
		}
	}
	for n := range constraints.LocationSet {
		if constraints.LocationSet[n].Rule != "" {
			constraints.LocationSet[n].RuleInEffect = evaluateRule(env, constraints.LocationSet[n].Rule, nodes)
		}
	}
}

func evaluateRule(env *cel.Env, rule string, nodes []Node) string {
	ast, issues := env.Compile(rule)
	if issues != nil && issues.Err() != nil {
		return RuleUnknown
	}

	prg, err := env.Program(ast)
	if err != nil {
		return RuleUnknown
	}

	for _, node := range nodes {
		attrs := node.Attributes
		if attrs == nil {
			attrs = map[string]string{}
		}
		out, _, err := prg.Eval(map[string]interface{}{
			"node": attrs,
		})
		if err != nil {
			continue
		}
		if holds, ok := out.Value().(bool); ok && holds {
			return RuleInEffect
		}
	}
	return RuleNotInEffect
}

func markAllUnknown(constraints *Constraints) {
	for n := range constraints.Location {
		if constraints.Location[n].Rule != "" {
			constraints.Location[n].RuleInEffect = RuleUnknown
		}
	}
	for n := range constraints.LocationSet {
		if constraints.LocationSet[n].Rule != "" {
			constraints.LocationSet[n].RuleInEffect = RuleUnknown
		}
	}
}
