package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Create(ctx context.Context, input flights.FlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Update(ctx context.Context, id int64, input flights.FlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testFlight() domain.Flight {
	return domain.Flight{
		ID:         4,
		RouteID:    1,
		AirplaneID: 2,
		Route: &domain.Route{
			ID:          1,
			Source:      &domain.Airport{ID: 1, Name: "Sheremetyevo", ClosestBigCity: "Moscow"},
			Destination: &domain.Airport{ID: 2, Name: "Pulkovo", ClosestBigCity: "Saint Petersburg"},
			Distance:    634,
		},
		Airplane: &domain.Airplane{
			ID:           2,
			Name:         "A320",
			Rows:         30,
			SeatsInRow:   8,
			AirplaneType: &domain.AirplaneType{ID: 1, Name: "Narrow-body"},
		},
		Crew:          []domain.Crew{{ID: 1, FirstName: "John", LastName: "Doe"}},
		DepartureTime: time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC),
		TicketsSold:   3,
	}
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights", nil)

	mockService.On("List", c.Request.Context(), domain.FlightFilter{}).
		Return([]domain.Flight{testFlight()}, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
	assert.Equal(t, "Sheremetyevo - Pulkovo", body[0]["route"])
	assert.Equal(t, "A320", body[0]["airplane"])
	assert.Equal(t, float64(240), body[0]["airplane_capacity"])
	assert.Equal(t, float64(237), body[0]["tickets_available"])
	assert.Equal(t, []interface{}{"John Doe"}, body[0]["crew"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_withFilter(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?route=7&departure_date=2025-06-02", nil)

	mockService.On("List", c.Request.Context(), mock.MatchedBy(func(f domain.FlightFilter) bool {
		return f.RouteID != nil && *f.RouteID == 7 &&
			f.DepartureDate != nil && f.DepartureDate.Equal(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)) &&
			f.ArrivalDate == nil
	})).Return([]domain.Flight{}, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_list_badRoute(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?route=moscow", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "route must be an integer id")

	mockService.AssertNotCalled(t, "List")
}

func TestFlightHandler_list_badDepartureDate(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?departure_date=02-06-2025", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "departure_date must be a YYYY-MM-DD date")

	mockService.AssertNotCalled(t, "List")
}

func TestFlightHandler_get(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request = httptest.NewRequest("GET", "/flights/4", nil)

	flight := testFlight()
	mockService.On("GetByID", c.Request.Context(), int64(4)).Return(&flight, nil).Once()

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	route := body["route"].(map[string]interface{})
	assert.Equal(t, "Sheremetyevo", route["source"].(map[string]interface{})["name"])
	// Nil taken seats renders as an empty array, not null.
	assert.Equal(t, []interface{}{}, body["taken_seats"])

	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_notFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	c.Request = httptest.NewRequest("GET", "/flights/999", nil)

	mockService.On("GetByID", c.Request.Context(), int64(999)).Return(nil, domain.ErrNotFound).Once()

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_get_badID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/flights/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByID")
}

func TestFlightHandler_create_validationError(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/flights",
		jsonBody(`{"route": 1, "airplane": 2, "departure_time": "2025-06-02T17:00:00Z", "arrival_time": "2025-06-02T14:00:00Z"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	ve := domain.NewValidationError()
	ve.Add("arrival_time", "arrival_time must be after departure_time")
	mockService.On("Create", c.Request.Context(), mock.AnythingOfType("flights.FlightInput")).Return(nil, ve).Once()

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "arrival_time must be after departure_time", body["errors"]["arrival_time"])
}
