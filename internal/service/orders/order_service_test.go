package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) AddTicket(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *MockOrderRepository) GetTicketByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	args := m.Called(ctx, flight, crewIDs)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	args := m.Called(ctx, flight, crewIDs)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func flightWithAirplane(id int64, rows, seatsInRow int) *domain.Flight {
	return &domain.Flight{
		ID:            id,
		RouteID:       1,
		AirplaneID:    2,
		DepartureTime: time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC),
		Airplane:      &domain.Airplane{ID: 2, Rows: rows, SeatsInRow: seatsInRow},
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockUsers := &MockUserRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrders, mockFlights, mockUsers, mockProducer, "order-events", nil)

	ctx := context.Background()
	tickets := []TicketInput{
		{Row: 10, Seat: 3, FlightID: 4},
		{Row: 11, Seat: 4, FlightID: 4},
	}

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Twice()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*domain.Order)
			order.ID = 17
			order.CreatedAt = time.Now()
		}).Return(nil).Once()
	mockUsers.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9, Email: "user@example.com"}, nil).Once()
	mockProducer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).Return(nil).Once()

	stored := &domain.Order{ID: 17, UserID: 9}
	mockOrders.On("GetByID", ctx, int64(17)).Return(stored, nil).Once()

	order, err := service.CreateOrder(ctx, 9, tickets)

	assert.NoError(t, err)
	assert.Equal(t, stored, order)

	mockOrders.AssertExpectations(t)
	mockFlights.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_CreateOrder_ReferenceAssigned(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewOrderService(mockOrders, mockFlights, nil, nil, "", nil)

	ctx := context.Background()

	var captured *domain.Order
	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*domain.Order)
			captured.ID = 1
		}).Return(nil).Once()
	mockOrders.On("GetByID", ctx, int64(1)).Return(&domain.Order{ID: 1}, nil).Once()

	_, err := service.CreateOrder(ctx, 9, []TicketInput{{Row: 1, Seat: 1, FlightID: 4}})

	assert.NoError(t, err)
	assert.NotNil(t, captured)
	assert.NotEmpty(t, captured.Reference)
	assert.Equal(t, int64(9), captured.UserID)
	assert.Len(t, captured.Tickets, 1)
}

func TestOrderService_CreateOrder_NoTickets(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewOrderService(mockOrders, mockFlights, nil, nil, "", nil)

	order, err := service.CreateOrder(context.Background(), 9, nil)

	assert.Nil(t, order)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "tickets")

	mockOrders.AssertNotCalled(t, "Create")
	mockFlights.AssertNotCalled(t, "GetByID")
}

func TestOrderService_CreateOrder_SeatOutOfRange(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewOrderService(mockOrders, mockFlights, nil, nil, "", nil)

	ctx := context.Background()

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Once()

	order, err := service.CreateOrder(ctx, 9, []TicketInput{{Row: 31, Seat: 2, FlightID: 4}})

	assert.Nil(t, order)
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "row number must be in available range: (1, 30)", ve.Fields()["row"])

	mockOrders.AssertNotCalled(t, "Create")
}

func TestOrderService_CreateOrder_UnknownFlight(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewOrderService(mockOrders, mockFlights, nil, nil, "", nil)

	ctx := context.Background()

	mockFlights.On("GetByID", ctx, int64(999)).Return(nil, domain.ErrNotFound).Once()

	order, err := service.CreateOrder(ctx, 9, []TicketInput{{Row: 1, Seat: 1, FlightID: 999}})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mockOrders.AssertNotCalled(t, "Create")
}

func TestOrderService_CreateOrder_SeatTaken(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewOrderService(mockOrders, mockFlights, nil, nil, "", nil)

	ctx := context.Background()

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Once()
	mockOrders.On("Create", ctx, mock.Anything).Return(domain.ErrSeatTaken).Once()

	order, err := service.CreateOrder(ctx, 9, []TicketInput{{Row: 10, Seat: 3, FlightID: 4}})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrSeatTaken)
}

func TestOrderService_CreateOrder_PublishFailureIgnored(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrders, mockFlights, nil, mockProducer, "order-events", nil)

	ctx := context.Background()

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Once()
	mockOrders.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = 5
		}).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()
	mockOrders.On("GetByID", ctx, int64(5)).Return(&domain.Order{ID: 5}, nil).Once()

	order, err := service.CreateOrder(ctx, 9, []TicketInput{{Row: 10, Seat: 3, FlightID: 4}})

	assert.NoError(t, err)
	assert.NotNil(t, order)

	mockProducer.AssertExpectations(t)
}

func TestOrderService_CreateOrder_NotificationsTopic(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrders, mockFlights, nil, mockProducer, "order-events", nil,
		WithNotificationsTopic("order-notifications"))

	ctx := context.Background()

	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Once()
	mockOrders.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = 5
		}).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "order-notifications", mock.Anything, mock.Anything).Return(nil).Once()
	mockOrders.On("GetByID", ctx, int64(5)).Return(&domain.Order{ID: 5}, nil).Once()

	_, err := service.CreateOrder(ctx, 9, []TicketInput{{Row: 10, Seat: 3, FlightID: 4}})

	assert.NoError(t, err)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_GetOrder_OwnedByCaller(t *testing.T) {
	mockOrders := &MockOrderRepository{}

	service := NewOrderService(mockOrders, nil, nil, nil, "", nil)

	ctx := context.Background()
	order := &domain.Order{ID: 17, UserID: 9}

	mockOrders.On("GetByID", ctx, int64(17)).Return(order, nil).Once()

	result, err := service.GetOrder(ctx, 9, 17)

	assert.NoError(t, err)
	assert.Equal(t, order, result)
}

func TestOrderService_GetOrder_OtherUsersOrderHidden(t *testing.T) {
	mockOrders := &MockOrderRepository{}

	service := NewOrderService(mockOrders, nil, nil, nil, "", nil)

	ctx := context.Background()

	mockOrders.On("GetByID", ctx, int64(17)).Return(&domain.Order{ID: 17, UserID: 9}, nil).Once()

	result, err := service.GetOrder(ctx, 5, 17)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderService_ListOrders(t *testing.T) {
	mockOrders := &MockOrderRepository{}

	service := NewOrderService(mockOrders, nil, nil, nil, "", nil)

	ctx := context.Background()
	orders := []domain.Order{{ID: 1, UserID: 9}, {ID: 2, UserID: 9}}

	mockOrders.On("ListByUser", ctx, int64(9)).Return(orders, nil).Once()

	result, err := service.ListOrders(ctx, 9)

	assert.NoError(t, err)
	assert.Equal(t, orders, result)
}

func TestOrderService_AddTicket_Success(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewOrderService(mockOrders, mockFlights, nil, nil, "", nil)

	ctx := context.Background()

	mockOrders.On("GetByID", ctx, int64(17)).Return(&domain.Order{ID: 17, UserID: 9}, nil).Once()
	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Once()
	mockOrders.On("AddTicket", ctx, mock.AnythingOfType("*domain.Ticket")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Ticket).ID = 3
		}).Return(nil).Once()

	stored := &domain.Ticket{ID: 3, Row: 10, Seat: 3, FlightID: 4, OrderID: 17}
	mockOrders.On("GetTicketByID", ctx, int64(3)).Return(stored, nil).Once()

	ticket, err := service.AddTicket(ctx, 9, 17, TicketInput{Row: 10, Seat: 3, FlightID: 4})

	assert.NoError(t, err)
	assert.Equal(t, stored, ticket)

	mockOrders.AssertExpectations(t)
}

func TestOrderService_AddTicket_EventCarriesStoredTickets(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}

	service := NewOrderService(mockOrders, mockFlights, nil, mockProducer, "order-events", nil)

	ctx := context.Background()
	existing := domain.Ticket{ID: 1, Row: 1, Seat: 1, FlightID: 4, OrderID: 17}

	mockOrders.On("GetByID", ctx, int64(17)).
		Return(&domain.Order{ID: 17, UserID: 9, Reference: "ref-17", Tickets: []domain.Ticket{existing}}, nil).Once()
	mockFlights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 30, 8), nil).Once()
	mockOrders.On("AddTicket", ctx, mock.AnythingOfType("*domain.Ticket")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Ticket).ID = 3
		}).Return(nil).Once()

	// The post-insert read includes both tickets; the event must reflect it.
	added := domain.Ticket{ID: 3, Row: 10, Seat: 3, FlightID: 4, OrderID: 17}
	mockOrders.On("GetByID", ctx, int64(17)).
		Return(&domain.Order{ID: 17, UserID: 9, Reference: "ref-17", Tickets: []domain.Ticket{existing, added}}, nil).Once()

	var published kafka.OrderEvent
	mockProducer.On("Publish", ctx, "order-events", "ref-17", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(3).(kafka.OrderEvent)
		}).Return(nil).Once()

	mockOrders.On("GetTicketByID", ctx, int64(3)).Return(&added, nil).Once()

	ticket, err := service.AddTicket(ctx, 9, 17, TicketInput{Row: 10, Seat: 3, FlightID: 4})

	assert.NoError(t, err)
	assert.Equal(t, &added, ticket)
	assert.Equal(t, "ticket_added", published.Type)
	assert.Equal(t, []kafka.TicketEvent{
		{FlightID: 4, Row: 1, Seat: 1},
		{FlightID: 4, Row: 10, Seat: 3},
	}, published.Tickets)

	mockOrders.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestOrderService_AddTicket_OtherUsersOrder(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}

	service := NewOrderService(mockOrders, mockFlights, nil, nil, "", nil)

	ctx := context.Background()

	mockOrders.On("GetByID", ctx, int64(17)).Return(&domain.Order{ID: 17, UserID: 9}, nil).Once()

	ticket, err := service.AddTicket(ctx, 5, 17, TicketInput{Row: 10, Seat: 3, FlightID: 4})

	assert.Nil(t, ticket)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mockOrders.AssertNotCalled(t, "AddTicket")
	mockFlights.AssertNotCalled(t, "GetByID")
}

func TestOrderService_GetTicket(t *testing.T) {
	mockOrders := &MockOrderRepository{}

	service := NewOrderService(mockOrders, nil, nil, nil, "", nil)

	ctx := context.Background()
	ticket := &domain.Ticket{ID: 3, Row: 10, Seat: 3, FlightID: 4, OrderID: 17}

	mockOrders.On("GetTicketByID", ctx, int64(3)).Return(ticket, nil).Once()

	result, err := service.GetTicket(ctx, 3)

	assert.NoError(t, err)
	assert.Equal(t, ticket, result)
}
