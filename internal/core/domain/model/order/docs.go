// Package order provides the Order aggregate and the workflow state machine of
// a customer special order.
//
// The package includes:
//   - Order: The aggregate root owning details, workflow flags and the cached customer contact
//   - Stage and Stages: The three ordered workflow flags (ordered, received, delivered)
//   - Transition: A sum type classifying a single-flag change and the cascade it needs
//   - Decision, CascadePolicy and Patch: How a confirmed transition becomes flag writes
//
// Key business rules:
//   - A change that breaks delivered ⇒ received ⇒ ordered needs explicit confirmation
//   - A declined confirmation writes nothing
//   - A confirmed turn-off always clears every later stage
//   - A confirmed turn-on sets the earlier stages the operator checked, or all of
//     them under PolicyStrict
package order
