package order

import (
	"errors"
	"fmt"

	"encargos/internal/pkg/errs"
)

// ErrTransitionCancelled is returned by Resolve when a transition that needs
// confirmation is declined. Nothing must be written.
var ErrTransitionCancelled = errors.New("stage transition cancelled")

// CascadePolicy decides how much freedom the operator has when confirming a
// turn-on cascade.
type CascadePolicy int

const (
	// PolicyPartialAllowed lets the operator leave the offered earlier stages
	// unchecked; only the requested flag is then written.
	PolicyPartialAllowed CascadePolicy = iota

	// PolicyStrict always sets every missing earlier stage on confirmation.
	PolicyStrict
)

// ParseCascadePolicy converts "partial" or "strict" into a CascadePolicy.
func ParseCascadePolicy(s string) (CascadePolicy, error) {
	switch s {
	case "", "partial":
		return PolicyPartialAllowed, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyPartialAllowed, errs.NewValueIsInvalidErrorWithCause(
		"cascade policy", fmt.Errorf("%q is not partial or strict", s))
}

func (p CascadePolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "partial"
}

// Decision is the operator's answer to a confirmation prompt.
// IncludeOrdered and IncludeReceived are the per-stage checkboxes of a turn-on
// cascade; they are ignored for turn-off cascades.
type Decision struct {
	Confirmed       bool
	IncludeOrdered  bool
	IncludeReceived bool
}

// Cancel declines the prompt.
func Cancel() Decision {
	return Decision{}
}

// ConfirmAll accepts the prompt with every offered stage checked.
func ConfirmAll() Decision {
	return Decision{Confirmed: true, IncludeOrdered: true, IncludeReceived: true}
}

// Confirm accepts the prompt with an explicit checkbox choice.
func Confirm(includeOrdered, includeReceived bool) Decision {
	return Decision{Confirmed: true, IncludeOrdered: includeOrdered, IncludeReceived: includeReceived}
}

// Change is one flag write.
type Change struct {
	Stage Stage
	Value bool
}

// Patch is the set of flag writes produced by resolving a transition.
// Changes are listed from the earliest stage to the latest.
type Patch struct {
	changes []Change
}

func newPatch(changes ...Change) Patch {
	ordered := make([]Change, 0, len(changes))
	for _, stage := range []Stage{Ordered, Received, Delivered} {
		for _, c := range changes {
			if c.Stage == stage {
				ordered = append(ordered, c)
			}
		}
	}
	return Patch{changes: ordered}
}

// Changes returns a copy of the writes.
func (p Patch) Changes() []Change {
	out := make([]Change, len(p.changes))
	copy(out, p.changes)
	return out
}

// Sets reports whether the patch writes value to stage.
func (p Patch) Sets(stage Stage, value bool) bool {
	for _, c := range p.changes {
		if c.Stage == stage && c.Value == value {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the patch writes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.changes) == 0
}

// Transition is a classified request to change one workflow flag.
// The concrete variants carry exactly the cascade fields relevant to them:
//
//	OrderedOn                        never needs confirmation
//	OrderedOff{ClearReceived, ClearDelivered}
//	ReceivedOn{SetOrdered}
//	ReceivedOff{ClearDelivered}
//	DeliveredOn{SetOrdered, SetReceived}
//	DeliveredOff                     never needs confirmation
type Transition interface {
	// Stage is the flag the operator asked to change.
	Stage() Stage
	// Value is the requested new value.
	Value() bool
	// RequiresConfirmation reports whether the change breaks the staircase
	// and must be confirmed before it is written.
	RequiresConfirmation() bool
	// Resolve turns the transition into the writes to perform.
	Resolve(d Decision, policy CascadePolicy) (Patch, error)

	isTransition()
}

// OrderedOn sets ordered=true. Always valid.
type OrderedOn struct{}

func (OrderedOn) Stage() Stage               { return Ordered }
func (OrderedOn) Value() bool                { return true }
func (OrderedOn) RequiresConfirmation() bool { return false }
func (OrderedOn) isTransition()              {}

func (t OrderedOn) Resolve(Decision, CascadePolicy) (Patch, error) {
	return newPatch(Change{Stage: Ordered, Value: true}), nil
}

// OrderedOff sets ordered=false. Later stages that are on must be cleared too.
type OrderedOff struct {
	ClearReceived  bool
	ClearDelivered bool
}

func (OrderedOff) Stage() Stage                 { return Ordered }
func (OrderedOff) Value() bool                  { return false }
func (t OrderedOff) RequiresConfirmation() bool { return t.ClearReceived || t.ClearDelivered }
func (OrderedOff) isTransition()                {}

// Resolve clears every dependent stage when confirmed. There is no partial choice.
func (t OrderedOff) Resolve(d Decision, _ CascadePolicy) (Patch, error) {
	if !t.RequiresConfirmation() {
		return newPatch(Change{Stage: Ordered, Value: false}), nil
	}
	if !d.Confirmed {
		return Patch{}, ErrTransitionCancelled
	}
	return newPatch(
		Change{Stage: Ordered, Value: false},
		Change{Stage: Received, Value: false},
		Change{Stage: Delivered, Value: false},
	), nil
}

// ReceivedOn sets received=true. SetOrdered is true when ordered is still off.
type ReceivedOn struct {
	SetOrdered bool
}

func (ReceivedOn) Stage() Stage                 { return Received }
func (ReceivedOn) Value() bool                  { return true }
func (t ReceivedOn) RequiresConfirmation() bool { return t.SetOrdered }
func (ReceivedOn) isTransition()                {}

// Resolve writes received and, when checked or when the policy is strict, ordered.
func (t ReceivedOn) Resolve(d Decision, policy CascadePolicy) (Patch, error) {
	requested := Change{Stage: Received, Value: true}
	if !t.RequiresConfirmation() {
		return newPatch(requested), nil
	}
	if !d.Confirmed {
		return Patch{}, ErrTransitionCancelled
	}
	if d.IncludeOrdered || policy == PolicyStrict {
		return newPatch(Change{Stage: Ordered, Value: true}, requested), nil
	}
	return newPatch(requested), nil
}

// ReceivedOff sets received=false. ClearDelivered is true when delivered is on.
type ReceivedOff struct {
	ClearDelivered bool
}

func (ReceivedOff) Stage() Stage                 { return Received }
func (ReceivedOff) Value() bool                  { return false }
func (t ReceivedOff) RequiresConfirmation() bool { return t.ClearDelivered }
func (ReceivedOff) isTransition()                {}

func (t ReceivedOff) Resolve(d Decision, _ CascadePolicy) (Patch, error) {
	if !t.RequiresConfirmation() {
		return newPatch(Change{Stage: Received, Value: false}), nil
	}
	if !d.Confirmed {
		return Patch{}, ErrTransitionCancelled
	}
	return newPatch(
		Change{Stage: Received, Value: false},
		Change{Stage: Delivered, Value: false},
	), nil
}

// DeliveredOn sets delivered=true. SetReceived and SetOrdered flag the missing
// earlier stages; only a missing received stage makes the request invalid.
type DeliveredOn struct {
	SetOrdered  bool
	SetReceived bool
}

func (DeliveredOn) Stage() Stage                 { return Delivered }
func (DeliveredOn) Value() bool                  { return true }
func (t DeliveredOn) RequiresConfirmation() bool { return t.SetReceived }
func (DeliveredOn) isTransition()                {}

func (t DeliveredOn) Resolve(d Decision, policy CascadePolicy) (Patch, error) {
	requested := Change{Stage: Delivered, Value: true}
	if !t.RequiresConfirmation() {
		return newPatch(requested), nil
	}
	if !d.Confirmed {
		return Patch{}, ErrTransitionCancelled
	}

	changes := []Change{requested}
	if t.SetOrdered && (d.IncludeOrdered || policy == PolicyStrict) {
		changes = append(changes, Change{Stage: Ordered, Value: true})
	}
	if d.IncludeReceived || policy == PolicyStrict {
		changes = append(changes, Change{Stage: Received, Value: true})
	}
	return newPatch(changes...), nil
}

// DeliveredOff sets delivered=false. Always valid.
type DeliveredOff struct{}

func (DeliveredOff) Stage() Stage               { return Delivered }
func (DeliveredOff) Value() bool                { return false }
func (DeliveredOff) RequiresConfirmation() bool { return false }
func (DeliveredOff) isTransition()              {}

func (t DeliveredOff) Resolve(Decision, CascadePolicy) (Patch, error) {
	return newPatch(Change{Stage: Delivered, Value: false}), nil
}
