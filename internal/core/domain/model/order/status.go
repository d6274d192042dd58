package order

import (
	"fmt"
	"sort"

	"orderflow/internal/pkg/errs"
)

// Status is the lifecycle state of an order or an order line. Statuses are
// free-form strings so each deployment can configure its own workflow; the
// set of legal values and transitions comes from the Pipeline the aggregate
// was constructed with.
type Status string

// Pipeline is a directed graph mapping a status to the statuses it may
// transition to. A status with an empty successor set is terminal.
//
// Pipelines are built once at startup from configuration and treated as
// immutable afterwards; the maps are copied on construction so later changes
// to the input cannot leak in.
type Pipeline struct {
	transitions   map[Status][]Status
	isConstructed bool
}

// NewPipeline creates a Pipeline from a transition map. Every status named as
// a successor must itself be a key of the map, so that a transition can never
// lead to a state the pipeline knows nothing about.
func NewPipeline(transitions map[Status][]Status) (Pipeline, error) {
	if len(transitions) == 0 {
		return Pipeline{}, errs.NewValueIsRequiredError("transitions")
	}

	copied := make(map[Status][]Status, len(transitions))
	for status, successors := range transitions {
		if status == "" {
			return Pipeline{}, errs.NewValueIsRequiredError("status")
		}
		copied[status] = append([]Status(nil), successors...)
	}

	for status, successors := range copied {
		for _, successor := range successors {
			if _, ok := copied[successor]; !ok {
				return Pipeline{}, errs.NewValueIsInvalidErrorWithCause(
					"transitions",
					fmt.Errorf("successor %q of %q is not a pipeline status", successor, status),
				)
			}
		}
	}

	return Pipeline{transitions: copied, isConstructed: true}, nil
}

// Validate ensures the Pipeline was created via NewPipeline.
func (p Pipeline) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredError("pipeline must be created via NewPipeline")
	}
	return nil
}

// Contains reports whether the status is a member of the pipeline.
func (p Pipeline) Contains(status Status) bool {
	_, ok := p.transitions[status]
	return ok
}

// Allows reports whether the pipeline permits a transition from one status to
// another.
func (p Pipeline) Allows(from, to Status) bool {
	for _, successor := range p.transitions[from] {
		if successor == to {
			return true
		}
	}
	return false
}

// AvailableFrom returns the statuses reachable from the given status.
func (p Pipeline) AvailableFrom(status Status) []Status {
	return append([]Status(nil), p.transitions[status]...)
}

// IsTerminal reports whether the status has no successors.
func (p Pipeline) IsTerminal(status Status) bool {
	return len(p.transitions[status]) == 0
}

// AllStatuses returns every status in the pipeline, sorted for deterministic
// output.
func (p Pipeline) AllStatuses() []Status {
	statuses := make([]Status, 0, len(p.transitions))
	for status := range p.transitions {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
	return statuses
}

// Pipelines bundles the status configuration an order needs: the order
// pipeline, the cascade map (order status -> line status forced on all lines
// when the order enters it), and the line pipeline.
type Pipelines struct {
	order         Pipeline
	cascade       map[Status]Status
	line          Pipeline
	isConstructed bool
}

// NewPipelines creates the status configuration for orders. Cascade keys must
// be order statuses and cascade targets must be line statuses.
func NewPipelines(orderPipeline Pipeline, cascade map[Status]Status, linePipeline Pipeline) (Pipelines, error) {
	if err := orderPipeline.Validate(); err != nil {
		return Pipelines{}, err
	}
	if err := linePipeline.Validate(); err != nil {
		return Pipelines{}, err
	}

	copied := make(map[Status]Status, len(cascade))
	for orderStatus, lineStatus := range cascade {
		if !orderPipeline.Contains(orderStatus) {
			return Pipelines{}, errs.NewValueIsInvalidErrorWithCause(
				"cascade",
				fmt.Errorf("%q is not an order status", orderStatus),
			)
		}
		if !linePipeline.Contains(lineStatus) {
			return Pipelines{}, errs.NewValueIsInvalidErrorWithCause(
				"cascade",
				fmt.Errorf("%q is not a line status", lineStatus),
			)
		}
		copied[orderStatus] = lineStatus
	}

	return Pipelines{
		order:         orderPipeline,
		cascade:       copied,
		line:          linePipeline,
		isConstructed: true,
	}, nil
}

// Validate ensures the Pipelines value was created via NewPipelines.
func (p Pipelines) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredError("pipelines must be created via NewPipelines")
	}
	return nil
}

// Order returns the order status pipeline.
func (p Pipelines) Order() Pipeline {
	return p.order
}

// Line returns the line status pipeline.
func (p Pipelines) Line() Pipeline {
	return p.line
}

// CascadeTarget returns the line status cascaded when an order enters the
// given status, if one is configured.
func (p Pipelines) CascadeTarget(orderStatus Status) (Status, bool) {
	target, ok := p.cascade[orderStatus]
	return target, ok
}
