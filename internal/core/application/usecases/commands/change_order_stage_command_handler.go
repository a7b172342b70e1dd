package commands

import (
	"context"
	"errors"
	"slices"

	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/services"
	"encargos/internal/core/ports"
	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/retry"
)

// StageOutcome is what a stage change ended in. It is one of StageApplied,
// ConfirmationRequired, NotificationRequired or StageCancelled.
type StageOutcome interface {
	isStageOutcome()
}

// StageApplied means the patch was written.
type StageApplied struct {
	Order *order.Order
	// WhatsAppURL is set when the customer is to be notified by opening the link.
	WhatsAppURL string
}

// ConfirmationRequired means the change breaks the staircase and the operator
// must decide on the cascade. Nothing was written.
type ConfirmationRequired struct {
	Transition order.Transition
}

// NotificationRequired means received is turning on for a customer with
// notification channels. Nothing was written.
type NotificationRequired struct {
	Channels []person.Channel
}

// StageCancelled means the operator cancelled the cascade. Nothing was written.
type StageCancelled struct{}

func (StageApplied) isStageOutcome()         {}
func (ConfirmationRequired) isStageOutcome() {}
func (NotificationRequired) isStageOutcome() {}
func (StageCancelled) isStageOutcome()       {}

// ChangeOrderStageCommandHandler runs the workflow state machine and the
// notification trigger for one order.
//
// Notification outcomes:
//   - WhatsApp: the link is built and received and notified are written together
//   - Email: the email is sent first; on failure a NotificationFailedError is
//     returned and nothing is written. Email is not offered while the sender
//     is disabled.
//   - Decline: only the stage patch is written
//
// An email sent by one attempt is not sent again when the write is retried.
type ChangeOrderStageCommandHandler struct {
	uowFactory UoWFactory
	email      ports.EmailSender
	whatsapp   ports.WhatsAppLinker
	policy     order.CascadePolicy
	recorder   ports.Recorder
	retrier    *retry.Retrier
}

func NewChangeOrderStageCommandHandler(
	uowFactory UoWFactory,
	email ports.EmailSender,
	whatsapp ports.WhatsAppLinker,
	policy order.CascadePolicy,
	recorder ports.Recorder,
	retrier *retry.Retrier,
) ChangeOrderStageCommandHandler {
	return ChangeOrderStageCommandHandler{
		uowFactory: uowFactory,
		email:      email,
		whatsapp:   whatsapp,
		policy:     policy,
		recorder:   recorderOrNop(recorder),
		retrier:    retrier,
	}
}

func (h ChangeOrderStageCommandHandler) Handle(
	ctx context.Context,
	command ChangeOrderStageCommand,
) (StageOutcome, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var sent deliveries
	return retry.DoValue(ctx, h.retrier, func(ctx context.Context) (StageOutcome, error) {
		return h.handle(ctx, command, &sent)
	})
}

// deliveries is what earlier attempts of one command already delivered.
type deliveries struct {
	email bool
}

func (h ChangeOrderStageCommandHandler) handle(
	ctx context.Context,
	command ChangeOrderStageCommand,
	sent *deliveries,
) (StageOutcome, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, command.Tenant(), command.OrderID())
	if err != nil {
		return nil, err
	}

	transition, err := o.RequestStage(command.Stage(), command.Value())
	if err != nil {
		return nil, err
	}

	decision := order.ConfirmAll()
	if transition.RequiresConfirmation() {
		if command.Decision() == nil {
			return ConfirmationRequired{Transition: transition}, nil
		}
		decision = *command.Decision()
	}

	patch, err := transition.Resolve(decision, h.policy)
	if errors.Is(err, order.ErrTransitionCancelled) {
		return StageCancelled{}, nil
	}
	if err != nil {
		return nil, err
	}

	applied := StageApplied{Order: o}
	notify := false

	if patch.Sets(order.Received, true) && !o.Stages().Received() {
		customer, findErr := findCustomer(ctx, uow.PersonRepository(), o)
		if findErr != nil {
			return nil, findErr
		}

		channels := h.available(services.NewNotificationPolicy().Offer(o, patch, customer))
		if len(channels) > 0 {
			switch choice := command.Choice().(type) {
			case nil:
				return NotificationRequired{Channels: channels}, nil
			case DeclineNotification:
			case SendVia:
				if applied.WhatsAppURL, err = h.notify(ctx, o, customer, choice.Channel, sent); err != nil {
					return nil, err
				}
				notify = true
			}
		}
	}

	o.ApplyPatch(patch)
	if notify {
		o.MarkNotified()
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, change := range patch.Changes() {
		h.recorder.StageChanged(change.Stage.String(), change.Value)
	}

	return applied, nil
}

// available drops the channels that cannot deliver.
func (h ChangeOrderStageCommandHandler) available(channels []person.Channel) []person.Channel {
	if h.email.Enabled() {
		return channels
	}
	return slices.DeleteFunc(channels, func(c person.Channel) bool {
		return c == person.Email
	})
}

// notify delivers on channel. It returns the WhatsApp link when that is the channel.
func (h ChangeOrderStageCommandHandler) notify(
	ctx context.Context,
	o *order.Order,
	customer *person.Person,
	channel person.Channel,
	sent *deliveries,
) (string, error) {
	if !customer.Accepts(channel) || !slices.Contains(h.available([]person.Channel{channel}), channel) {
		return "", errs.NewValueIsInvalidErrorWithCause("channel",
			errors.New(channel.String()+" is not enabled for this customer"))
	}

	switch channel {
	case person.WhatsApp:
		url, ok := h.whatsapp.WhatsAppLink(o, customer)
		h.recorder.NotificationSent(channel.String(), ok)
		if !ok {
			return "", errs.NewNotificationFailedError(channel.String(), errors.New("no link could be built"))
		}
		return url, nil
	case person.Email:
		if sent.email {
			return "", nil
		}
		err := h.email.SendEmailNotification(ctx, o, customer)
		h.recorder.NotificationSent(channel.String(), err == nil)
		if err != nil {
			return "", errs.NewNotificationFailedError(channel.String(), err)
		}
		sent.email = true
		return "", nil
	case person.UnknownChannel:
	}
	return "", errs.NewValueIsInvalidError("channel")
}
