package http

import (
	"time"

	"encargos/internal/core/application/usecases/commands"
	"encargos/internal/core/application/usecases/queries"
	"encargos/internal/core/domain/model/catalog"
	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/core/domain/services"
	"encargos/internal/core/domain/validation"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Product       string          `json:"product"`
	Lab           string          `json:"lab,omitempty"`
	Warehouse     string          `json:"warehouse,omitempty"`
	Ordered       bool            `json:"ordered"`
	Received      bool            `json:"received"`
	Delivered     bool            `json:"delivered"`
	Notified      bool            `json:"notified"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	PersonID      *string         `json:"person_id"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func idPtr(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func orderFromDomain(o *order.Order) OrderResponse {
	stages := o.Stages()
	return OrderResponse{
		ID:            o.ID().String(),
		Date:          o.Date().Format(validation.DateLayout),
		Product:       o.Product(),
		Lab:           o.Lab(),
		Warehouse:     o.Warehouse(),
		Ordered:       stages.Ordered(),
		Received:      stages.Received(),
		Delivered:     stages.Delivered(),
		Notified:      o.Notified(),
		CustomerName:  o.Customer().Name(),
		CustomerPhone: o.Customer().Phone(),
		PersonID:      idPtr(o.PersonID()),
		Amount:        o.Amount(),
		Notes:         o.Notes(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func orderFromView(v queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:            v.ID.String(),
		Date:          v.Date.Format(validation.DateLayout),
		Product:       v.Product,
		Lab:           v.Lab,
		Warehouse:     v.Warehouse,
		Ordered:       v.Ordered,
		Received:      v.Received,
		Delivered:     v.Delivered,
		Notified:      v.Notified,
		CustomerName:  v.CustomerName,
		CustomerPhone: v.CustomerPhone,
		PersonID:      idPtr(v.PersonID),
		Amount:        v.Amount,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func ordersFromViews(views []queries.OrderView) []OrderResponse {
	out := make([]OrderResponse, len(views))
	for i, v := range views {
		out[i] = orderFromView(v)
	}
	return out
}

type OrderPageResponse struct {
	Items      []OrderResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type PersonResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email,omitempty"`
	PhoneNotifications bool      `json:"phone_notifications"`
	EmailNotifications bool      `json:"email_notifications"`
	OrderCount         *int64    `json:"order_count,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func personFromDomain(p *person.Person) PersonResponse {
	prefs := p.Preferences()
	return PersonResponse{
		ID:                 p.ID().String(),
		Name:               p.Name(),
		Phone:              p.Phone(),
		Email:              p.Email(),
		PhoneNotifications: prefs.Phone,
		EmailNotifications: prefs.Email,
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func personFromView(v queries.PersonView) PersonResponse {
	count := v.OrderCount
	return PersonResponse{
		ID:                 v.ID.String(),
		Name:               v.Name,
		Phone:              v.Phone,
		Email:              v.Email,
		PhoneNotifications: v.PhoneNotifications,
		EmailNotifications: v.EmailNotifications,
		OrderCount:         &count,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

type CatalogItemResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func catalogItemFromDomain(i *catalog.Item) CatalogItemResponse {
	return CatalogItemResponse{
		ID:        i.ID().String(),
		Kind:      i.Kind().String(),
		Name:      i.Name(),
		CreatedAt: i.CreatedAt(),
	}
}

func catalogItemFromView(v queries.CatalogItemView) CatalogItemResponse {
	return CatalogItemResponse{
		ID:        v.ID.String(),
		Kind:      v.Kind.String(),
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
	}
}

// TransitionResponse describes a cascade the operator has to confirm. Only
// the fields relevant to the requested change are set.
type TransitionResponse struct {
	Stage          string `json:"stage"`
	Value          bool   `json:"value"`
	SetOrdered     bool   `json:"set_ordered,omitempty"`
	SetReceived    bool   `json:"set_received,omitempty"`
	ClearReceived  bool   `json:"clear_received,omitempty"`
	ClearDelivered bool   `json:"clear_delivered,omitempty"`
}

func transitionFromDomain(t order.Transition) TransitionResponse {
	resp := TransitionResponse{Stage: t.Stage().String(), Value: t.Value()}
	switch tr := t.(type) {
	case order.OrderedOff:
		resp.ClearReceived = tr.ClearReceived
		resp.ClearDelivered = tr.ClearDelivered
	case order.ReceivedOn:
		resp.SetOrdered = tr.SetOrdered
	case order.ReceivedOff:
		resp.ClearDelivered = tr.ClearDelivered
	case order.DeliveredOn:
		resp.SetOrdered = tr.SetOrdered
		resp.SetReceived = tr.SetReceived
	case order.OrderedOn, order.DeliveredOff:
	}
	return resp
}

// Stage outcomes on the wire.
const (
	outcomeApplied              = "applied"
	outcomeConfirmationRequired = "confirmation_required"
	outcomeNotificationRequired = "notification_required"
	outcomeCancelled            = "cancelled"
)

type StageOutcomeResponse struct {
	Outcome     string              `json:"outcome"`
	Order       *OrderResponse      `json:"order,omitempty"`
	WhatsAppURL string              `json:"whatsapp_url,omitempty"`
	Transition  *TransitionResponse `json:"transition,omitempty"`
	Channels    []string            `json:"channels,omitempty"`
}

func stageOutcomeFromDomain(outcome commands.StageOutcome) StageOutcomeResponse {
	switch out := outcome.(type) {
	case commands.StageApplied:
		o := orderFromDomain(out.Order)
		return StageOutcomeResponse{Outcome: outcomeApplied, Order: &o, WhatsAppURL: out.WhatsAppURL}
	case commands.ConfirmationRequired:
		t := transitionFromDomain(out.Transition)
		return StageOutcomeResponse{Outcome: outcomeConfirmationRequired, Transition: &t}
	case commands.NotificationRequired:
		channels := make([]string, len(out.Channels))
		for i, ch := range out.Channels {
			channels[i] = ch.String()
		}
		return StageOutcomeResponse{Outcome: outcomeNotificationRequired, Channels: channels}
	}
	return StageOutcomeResponse{Outcome: outcomeCancelled}
}

type MismatchResponse struct {
	OrderID    string `json:"order_id"`
	OrderName  string `json:"order_name"`
	PersonID   string `json:"person_id"`
	PersonName string `json:"person_name"`
	Phone      string `json:"phone"`
}

type DuplicatePhoneResponse struct {
	Phone     string   `json:"phone"`
	PersonIDs []string `json:"person_ids"`
}

type ConsistencyReportResponse struct {
	Clean           bool                     `json:"clean"`
	Orphaned        []string                 `json:"orphaned"`
	Inconsistent    []MismatchResponse       `json:"inconsistent"`
	DuplicatePhones []DuplicatePhoneResponse `json:"duplicate_phones"`
}

func reportFromDomain(r services.Report) ConsistencyReportResponse {
	resp := ConsistencyReportResponse{
		Clean:           r.IsClean(),
		Orphaned:        make([]string, len(r.Orphaned)),
		Inconsistent:    make([]MismatchResponse, len(r.Inconsistent)),
		DuplicatePhones: make([]DuplicatePhoneResponse, len(r.DuplicatePhones)),
	}
	for i, id := range r.Orphaned {
		resp.Orphaned[i] = id.String()
	}
	for i, m := range r.Inconsistent {
		resp.Inconsistent[i] = MismatchResponse{
			OrderID:    m.OrderID.String(),
			OrderName:  m.OrderName,
			PersonID:   m.PersonID.String(),
			PersonName: m.PersonName,
			Phone:      m.Phone,
		}
	}
	for i, d := range r.DuplicatePhones {
		ids := make([]string, len(d.PersonIDs))
		for j, id := range d.PersonIDs {
			ids[j] = id.String()
		}
		resp.DuplicatePhones[i] = DuplicatePhoneResponse{Phone: d.Phone, PersonIDs: ids}
	}
	return resp
}

type RepairResponse struct {
	Fixed  int      `json:"fixed"`
	Errors []string `json:"errors"`
}

type MonthTotalsResponse struct {
	Orders int64           `json:"orders"`
	Amount decimal.Decimal `json:"amount"`
}

type DashboardResponse struct {
	TotalOrders     int64               `json:"total_orders"`
	Pending         int64               `json:"pending"`
	AwaitingArrival int64               `json:"awaiting_arrival"`
	ReadyForPickup  int64               `json:"ready_for_pickup"`
	Delivered       int64               `json:"delivered"`
	NotNotified     int64               `json:"not_notified"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Persons         int64               `json:"persons"`
	ThisMonth       MonthTotalsResponse `json:"this_month"`
	LastMonth       MonthTotalsResponse `json:"last_month"`
}

func dashboardFromQuery(d queries.Dashboard) DashboardResponse {
	return DashboardResponse{
		TotalOrders:     d.TotalOrders,
		Pending:         d.Pending,
		AwaitingArrival: d.AwaitingArrival,
		ReadyForPickup:  d.ReadyForPickup,
		Delivered:       d.Delivered,
		NotNotified:     d.NotNotified,
		TotalAmount:     d.TotalAmount,
		Persons:         d.Persons,
		ThisMonth:       MonthTotalsResponse(d.ThisMonth),
		LastMonth:       MonthTotalsResponse(d.LastMonth),
	}
}
