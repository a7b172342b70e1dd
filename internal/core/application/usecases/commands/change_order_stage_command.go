package commands

import (
	"errors"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/guard"
)

var ErrChangeOrderStageCommandIsNotConstructed = errors.New(
	"ChangeOrderStageCommand must be created via NewChangeOrderStageCommand constructor",
)

// NotificationChoice is the operator's answer to a NotificationRequired outcome.
// It is one of SendVia or DeclineNotification; nil means no answer yet.
type NotificationChoice interface {
	isNotificationChoice()
}

// SendVia notifies the customer on Channel before writing.
type SendVia struct {
	Channel person.Channel
}

// DeclineNotification writes the stage without notifying.
type DeclineNotification struct{}

func (SendVia) isNotificationChoice()             {}
func (DeclineNotification) isNotificationChoice() {}

// ChangeOrderStageCommand sets one workflow flag of an order.
//
// The first call usually carries no decision and no choice. The handler then
// answers with ConfirmationRequired or NotificationRequired when the operator
// has to be asked, and the caller repeats the command with the answers filled in.
//
// Example:
//
//	cmd, _ := NewChangeOrderStageCommand(tenant, id, order.Received, true, nil, nil)
//	outcome, err := handler.Handle(ctx, cmd)
//	switch out := outcome.(type) {
//	case ConfirmationRequired:
//	    d := order.Confirm(true, false)
//	    cmd, _ = NewChangeOrderStageCommand(tenant, id, order.Received, true, &d, nil)
//	case NotificationRequired:
//	    cmd, _ = NewChangeOrderStageCommand(tenant, id, order.Received, true, nil, SendVia{out.Channels[0]})
//	}
type ChangeOrderStageCommand struct {
	tenant   kernel.TenantID
	orderID  kernel.UUID
	stage    order.Stage
	value    bool
	decision *order.Decision
	choice   NotificationChoice

	guard guard.ConstructorGuard
}

func NewChangeOrderStageCommand(
	tenant kernel.TenantID,
	orderID kernel.UUID,
	stage order.Stage,
	value bool,
	decision *order.Decision,
	choice NotificationChoice,
) (ChangeOrderStageCommand, error) {
	if err := errors.Join(tenant.Validate(), orderID.Validate(), stage.Validate()); err != nil {
		return ChangeOrderStageCommand{}, err
	}

	return ChangeOrderStageCommand{
		tenant:   tenant,
		orderID:  orderID,
		stage:    stage,
		value:    value,
		decision: decision,
		choice:   choice,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStageCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStageCommandIsNotConstructed)
}

func (c ChangeOrderStageCommand) Tenant() kernel.TenantID {
	return c.tenant
}

func (c ChangeOrderStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStageCommand) Stage() order.Stage {
	return c.stage
}

func (c ChangeOrderStageCommand) Value() bool {
	return c.value
}

// Decision is the operator's cascade answer, nil when not given.
func (c ChangeOrderStageCommand) Decision() *order.Decision {
	return c.decision
}

// Choice is the operator's notification answer, nil when not given.
func (c ChangeOrderStageCommand) Choice() NotificationChoice {
	return c.choice
}
