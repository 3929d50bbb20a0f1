package flights

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type FlightInput struct {
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew"`
}

// Cache holds filtered flight listings. Correctness never depends on it:
// seat uniqueness is enforced by the storage layer, so stale listings can
// only cost a conflict error at checkout, never a double booking.
type Cache interface {
	GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
	log   *logrus.Logger
}

func NewFlightService(repo repository.FlightRepository, cache Cache, log *logrus.Logger) *FlightService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, filter); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, filter, flights); err != nil {
			s.log.WithError(err).Warn("failed to cache flight listing")
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	if err := validateFlight(input); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		RouteID:       input.RouteID,
		AirplaneID:    input.AirplaneID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := s.repo.Create(ctx, flight, input.CrewIDs); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.log.WithField("flight_id", flight.ID).Info("flight created")
	return s.repo.GetByID(ctx, flight.ID)
}

func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	if err := validateFlight(input); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		ID:            id,
		RouteID:       input.RouteID,
		AirplaneID:    input.AirplaneID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := s.repo.Update(ctx, flight, input.CrewIDs); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.WithError(err).Warn("failed to invalidate flight cache")
	}
}

func validateFlight(input FlightInput) error {
	ve := domain.NewValidationError()
	if input.DepartureTime.IsZero() {
		ve.Add("departure_time", "departure_time is required")
	}
	if input.ArrivalTime.IsZero() {
		ve.Add("arrival_time", "arrival_time is required")
	}
	if !input.DepartureTime.IsZero() && !input.ArrivalTime.IsZero() && !input.ArrivalTime.After(input.DepartureTime) {
		ve.Add("arrival_time", "arrival_time must be after departure_time")
	}
	return ve.ErrOrNil()
}

var _ FlightUseCase = (*FlightService)(nil)
