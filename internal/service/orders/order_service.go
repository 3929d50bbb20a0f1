package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
)

type OrderUseCase interface {
	// CreateOrder books all tickets for the authenticated user atomically.
	// The user id always comes from the verified token, never the payload.
	CreateOrder(ctx context.Context, userID int64, tickets []TicketInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	AddTicket(ctx context.Context, userID, orderID int64, input TicketInput) (*domain.Ticket, error)

	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
}

type TicketInput struct {
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight"`
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	producer           Producer
	orderTopic         string
	notificationsTopic string
	log                *logrus.Logger
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	producer Producer,
	orderTopic string,
	log *logrus.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	service := &OrderService{
		orders:     orders,
		flights:    flights,
		users:      users,
		producer:   producer,
		orderTopic: orderTopic,
		log:        log,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *OrderService) CreateOrder(ctx context.Context, userID int64, tickets []TicketInput) (*domain.Order, error) {
	if len(tickets) == 0 {
		ve := domain.NewValidationError()
		ve.Add("tickets", "at least one ticket is required")
		return nil, ve
	}

	// Validate every seat against its flight's airplane up front. The
	// repository validates again inside the transaction, this pass just
	// fails fast before anything is written.
	for i, t := range tickets {
		flight, err := s.flights.GetByID(ctx, t.FlightID)
		if err != nil {
			return nil, fmt.Errorf("tickets[%d]: flight %d: %w", i, t.FlightID, err)
		}
		if err := domain.ValidateSeat(t.Row, t.Seat, *flight.Airplane); err != nil {
			return nil, err
		}
	}

	order := &domain.Order{
		Reference: uuid.NewString(),
		UserID:    userID,
	}
	for _, t := range tickets {
		order.Tickets = append(order.Tickets, domain.Ticket{Row: t.Row, Seat: t.Seat, FlightID: t.FlightID})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"tickets":  len(order.Tickets),
	}).Info("order created")

	s.publish(ctx, "order_created", order)
	return s.orders.GetByID(ctx, order.ID)
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetOrder hides other users' orders behind ErrNotFound rather than
// ErrForbidden so order ids cannot be probed.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) AddTicket(ctx context.Context, userID, orderID int64, input TicketInput) (*domain.Ticket, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, fmt.Errorf("flight %d: %w", input.FlightID, err)
	}
	if err := domain.ValidateSeat(input.Row, input.Seat, *flight.Airplane); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{Row: input.Row, Seat: input.Seat, FlightID: input.FlightID, OrderID: order.ID}
	if err := s.orders.AddTicket(ctx, ticket); err != nil {
		return nil, err
	}

	// The event carries every ticket on the order, so it is built from a
	// fresh read rather than this request's pre-insert snapshot.
	if s.producer != nil && s.orderTopic != "" {
		if fresh, err := s.orders.GetByID(ctx, order.ID); err == nil {
			s.publish(ctx, "ticket_added", fresh)
		}
	}
	return s.orders.GetTicketByID(ctx, ticket.ID)
}

func (s *OrderService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.orders.ListTickets(ctx)
}

func (s *OrderService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.orders.GetTicketByID(ctx, id)
}

// publish is best effort: a broker outage must not fail a committed order.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.producer == nil || s.orderTopic == "" {
		return
	}

	event := kafka.OrderEvent{
		Type:      eventType,
		Reference: order.Reference,
		OrderID:   order.ID,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
	}
	if s.users != nil {
		if user, err := s.users.GetByID(ctx, order.UserID); err == nil {
			event.Email = user.Email
		}
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.TicketEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	if err := s.producer.Publish(ctx, s.orderTopic, order.Reference, event); err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Warnf("failed to publish %s event", eventType)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, order.Reference, event); err != nil {
			s.log.WithError(err).WithField("order_id", order.ID).Warn("failed to publish notification event")
		}
	}
}

var _ OrderUseCase = (*OrderService)(nil)
