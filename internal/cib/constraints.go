// Package cib models the cluster configuration snapshot consumed by the
// validators and the constraint enrichment pipeline.
package cib

import (
	"context"
	"fmt"

	"github.com/pacectl/pacectl/internal/reports"
)

// ResourceSet is the set-form member list shared by set constraints.
type ResourceSet struct {
	ID         string   `yaml:"id" json:"id"`
	Resources  []string `yaml:"resources" json:"resources"`
	Role       string   `yaml:"role,omitempty" json:"role,omitempty"`
	Action     string   `yaml:"action,omitempty" json:"action,omitempty"`
	Sequential string   `yaml:"sequential,omitempty" json:"sequential,omitempty"`
	RequireAll string   `yaml:"require_all,omitempty" json:"requireAll,omitempty"`
}

// LocationConstraint ties a resource to a node, optionally via a rule.
type LocationConstraint struct {
	ID              string `yaml:"id" json:"id"`
	Resource        string `yaml:"resource,omitempty" json:"resource,omitempty"`
	ResourcePattern string `yaml:"resource_pattern,omitempty" json:"resourcePattern,omitempty"`
	Node            string `yaml:"node,omitempty" json:"node,omitempty"`
	Score           string `yaml:"score,omitempty" json:"score,omitempty"`
	Rule            string `yaml:"rule,omitempty" json:"rule,omitempty"`
	// RuleInEffect is filled by FetchAll when rule evaluation is requested:
	// "in_effect", "not_in_effect", or "unknown" on evaluation failure.
	RuleInEffect string `yaml:"-" json:"ruleInEffect,omitempty"`
}

// LocationSetConstraint is the set form of a location constraint.
type LocationSetConstraint struct {
	ID           string        `yaml:"id" json:"id"`
	Sets         []ResourceSet `yaml:"sets" json:"sets"`
	Node         string        `yaml:"node,omitempty" json:"node,omitempty"`
	Score        string        `yaml:"score,omitempty" json:"score,omitempty"`
	Rule         string        `yaml:"rule,omitempty" json:"rule,omitempty"`
	RuleInEffect string        `yaml:"-" json:"ruleInEffect,omitempty"`
}

// ColocationConstraint keeps two resources together (or apart).
type ColocationConstraint struct {
	ID           string `yaml:"id" json:"id"`
	Resource     string `yaml:"resource" json:"resource"`
	WithResource string `yaml:"with_resource" json:"withResource"`
	Score        string `yaml:"score,omitempty" json:"score,omitempty"`
	Role         string `yaml:"role,omitempty" json:"role,omitempty"`
	WithRole     string `yaml:"with_role,omitempty" json:"withRole,omitempty"`
}

// ColocationSetConstraint is the set form of a colocation constraint.
type ColocationSetConstraint struct {
	ID    string        `yaml:"id" json:"id"`
	Score string        `yaml:"score,omitempty" json:"score,omitempty"`
	Sets  []ResourceSet `yaml:"sets" json:"sets"`
}

// OrderConstraint sequences actions on two resources.
type OrderConstraint struct {
	ID          string `yaml:"id" json:"id"`
	First       string `yaml:"first" json:"first"`
	Then        string `yaml:"then" json:"then"`
	FirstAction string `yaml:"first_action,omitempty" json:"firstAction,omitempty"`
	ThenAction  string `yaml:"then_action,omitempty" json:"thenAction,omitempty"`
	Kind        string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Symmetrical string `yaml:"symmetrical,omitempty" json:"symmetrical,omitempty"`
}

// OrderSetConstraint is the set form of an order constraint.
type OrderSetConstraint struct {
	ID          string        `yaml:"id" json:"id"`
	Kind        string        `yaml:"kind,omitempty" json:"kind,omitempty"`
	Symmetrical string        `yaml:"symmetrical,omitempty" json:"symmetrical,omitempty"`
	Sets        []ResourceSet `yaml:"sets" json:"sets"`
}

// TicketConstraint binds a resource to a cluster ticket.
type TicketConstraint struct {
	ID         string `yaml:"id" json:"id"`
	Ticket     string `yaml:"ticket" json:"ticket"`
	Resource   string `yaml:"resource" json:"resource"`
	Role       string `yaml:"role,omitempty" json:"role,omitempty"`
	LossPolicy string `yaml:"loss_policy,omitempty" json:"lossPolicy,omitempty"`
}

// TicketSetConstraint is the set form of a ticket constraint.
type TicketSetConstraint struct {
	ID         string        `yaml:"id" json:"id"`
	Ticket     string        `yaml:"ticket" json:"ticket"`
	LossPolicy string        `yaml:"loss_policy,omitempty" json:"lossPolicy,omitempty"`
	Sets       []ResourceSet `yaml:"sets" json:"sets"`
}

// Constraints is the full constraint configuration, eight independently
// checked categories.
type Constraints struct {
	Location      []LocationConstraint      `yaml:"location,omitempty" json:"location"`
	LocationSet   []LocationSetConstraint   `yaml:"location_set,omitempty" json:"locationSet"`
	Colocation    []ColocationConstraint    `yaml:"colocation,omitempty" json:"colocation"`
	ColocationSet []ColocationSetConstraint `yaml:"colocation_set,omitempty" json:"colocationSet"`
	Order         []OrderConstraint         `yaml:"order,omitempty" json:"order"`
	OrderSet      []OrderSetConstraint      `yaml:"order_set,omitempty" json:"orderSet"`
	Ticket        []TicketConstraint        `yaml:"ticket,omitempty" json:"ticket"`
	TicketSet     []TicketSetConstraint     `yaml:"ticket_set,omitempty" json:"ticketSet"`
}

// Store fetches the current constraint configuration.
type Store interface {
	FetchAll(ctx context.Context, evaluateRules bool) (*Constraints, error)
}

// LoadError is the structured failure of a configuration fetch. It may
// carry partial raw output and report items embedded by the loader.
type LoadError struct {
	Reason string
	Output string
	Items  []reports.Item
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
