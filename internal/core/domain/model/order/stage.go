package order

import (
	"fmt"
	"strings"

	"encargos/internal/pkg/errs"
)

// Stage names one of the three workflow flags of an order.
// Stages are ordered: an order is first Ordered from the supplier, then
// Received in store, then Delivered to the customer.
//
// Workflow staircase (valid resting states):
//
//	(F,F,F) ──> (T,F,F) ──> (T,T,F) ──> (T,T,T)
//	 none       ordered     received    delivered
//
// Any other combination may already be stored; it is never produced by a
// transition unless the operator explicitly declines the offered cascade.
type Stage int

const (
	// UnknownStage represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	UnknownStage Stage = iota

	// Ordered means the product was requested from the supplier.
	Ordered

	// Received means the product arrived at the selling point.
	Received

	// Delivered means the customer picked the product up.
	Delivered
)

// getStageStrings returns the wire names of every stage.
func getStageStrings() map[Stage]string {
	return map[Stage]string{
		UnknownStage: "unknown",
		Ordered:      "ordered",
		Received:     "received",
		Delivered:    "delivered",
	}
}

// Validate checks if the Stage value is one of Ordered, Received, Delivered.
func (s Stage) Validate() error {
	if s < Ordered || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the wire name of the stage.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Stage value, including invalid ones.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStage converts a wire name ("ordered", "received", "delivered") into a Stage.
// Matching is case-insensitive.
func ParseStage(s string) (Stage, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for stage, str := range getStageStrings() {
		if stage != UnknownStage && str == name {
			return stage, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", s))
}

// Stages is the value object holding the three workflow flags.
// It does not enforce the staircase on construction because legacy rows may
// violate it; the rules are applied when a change is requested.
type Stages struct {
	ordered   bool
	received  bool
	delivered bool
}

// NewStages builds a Stages value from raw flags.
func NewStages(ordered, received, delivered bool) Stages {
	return Stages{
		ordered:   ordered,
		received:  received,
		delivered: delivered,
	}
}

func (s Stages) Ordered() bool {
	return s.ordered
}

func (s Stages) Received() bool {
	return s.received
}

func (s Stages) Delivered() bool {
	return s.delivered
}

// Get returns the flag for stage. Unknown stages read as false.
func (s Stages) Get(stage Stage) bool {
	switch stage {
	case Ordered:
		return s.ordered
	case Received:
		return s.received
	case Delivered:
		return s.delivered
	case UnknownStage:
		return false
	}
	return false
}

// IsStaircase reports whether delivered ⇒ received ⇒ ordered holds.
func (s Stages) IsStaircase() bool {
	return (!s.delivered || s.received) && (!s.received || s.ordered)
}

// Request classifies a change of a single flag against the current values.
//
// Classification rules:
//   - received=true while ordered=false needs confirmation (ReceivedOn)
//   - delivered=true while received=false needs confirmation (DeliveredOn)
//   - ordered=false while received or delivered is true needs confirmation (OrderedOff)
//   - received=false while delivered=true needs confirmation (ReceivedOff)
//   - every other change is applied as is
//
// Returns:
//   - the Transition variant describing the change
//   - error if stage is not a valid Stage
//
// Example:
//
//	t, err := stages.Request(order.Received, true)
//	if err != nil {
//	    return err
//	}
//	if t.RequiresConfirmation() {
//	    // ask the operator, then call t.Resolve(decision, policy)
//	}
func (s Stages) Request(stage Stage, value bool) (Transition, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	switch {
	case stage == Ordered && value:
		return OrderedOn{}, nil
	case stage == Ordered:
		return OrderedOff{ClearReceived: s.received, ClearDelivered: s.delivered}, nil
	case stage == Received && value:
		return ReceivedOn{SetOrdered: !s.ordered}, nil
	case stage == Received:
		return ReceivedOff{ClearDelivered: s.delivered}, nil
	case value:
		return DeliveredOn{SetOrdered: !s.ordered, SetReceived: !s.received}, nil
	default:
		return DeliveredOff{}, nil
	}
}

// Apply returns a copy of s with the patch written over it.
func (s Stages) Apply(p Patch) Stages {
	for _, c := range p.changes {
		switch c.Stage {
		case Ordered:
			s.ordered = c.Value
		case Received:
			s.received = c.Value
		case Delivered:
			s.delivered = c.Value
		case UnknownStage:
		}
	}
	return s
}

func (s Stages) String() string {
	return fmt.Sprintf("Stages(ordered=%t, received=%t, delivered=%t)", s.ordered, s.received, s.delivered)
}
