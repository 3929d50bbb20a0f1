package catalog

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

// CatalogUseCase covers the reference data: airports, routes, crew members,
// airplane types and airplanes. Writes are staff-only; the API layer gates
// that, this service only validates the payloads.
type CatalogUseCase interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	GetAirport(ctx context.Context, id int64) (*domain.Airport, error)
	CreateAirport(ctx context.Context, input AirportInput) (*domain.Airport, error)
	UpdateAirport(ctx context.Context, id int64, input AirportInput) (*domain.Airport, error)
	DeleteAirport(ctx context.Context, id int64) error

	ListRoutes(ctx context.Context) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, input RouteInput) (*domain.Route, error)
	UpdateRoute(ctx context.Context, id int64, input RouteInput) (*domain.Route, error)
	DeleteRoute(ctx context.Context, id int64) error

	ListCrew(ctx context.Context) ([]domain.Crew, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, input CrewInput) (*domain.Crew, error)
	UpdateCrew(ctx context.Context, id int64, input CrewInput) (*domain.Crew, error)
	DeleteCrew(ctx context.Context, id int64) error

	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error)

	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, input AirplaneInput) (*domain.Airplane, error)
	UpdateAirplane(ctx context.Context, id int64, input AirplaneInput) (*domain.Airplane, error)
	DeleteAirplane(ctx context.Context, id int64) error
}

type AirportInput struct {
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type RouteInput struct {
	SourceID      int64 `json:"source"`
	DestinationID int64 `json:"destination"`
	Distance      int   `json:"distance"`
}

type CrewInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AirplaneInput struct {
	Name           string `json:"name"`
	Rows           int    `json:"rows"`
	SeatsInRow     int    `json:"seats_in_row"`
	AirplaneTypeID int64  `json:"airplane_type"`
}

type CatalogService struct {
	airports  repository.AirportRepository
	routes    repository.RouteRepository
	crews     repository.CrewRepository
	airplanes repository.AirplaneRepository
	log       *logrus.Logger
}

func NewCatalogService(
	airports repository.AirportRepository,
	routes repository.RouteRepository,
	crews repository.CrewRepository,
	airplanes repository.AirplaneRepository,
	log *logrus.Logger,
) *CatalogService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogService{airports: airports, routes: routes, crews: crews, airplanes: airplanes, log: log}
}

func (s *CatalogService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return s.airports.List(ctx)
}

func (s *CatalogService) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.airports.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirport(ctx context.Context, input AirportInput) (*domain.Airport, error) {
	if err := validateAirport(input); err != nil {
		return nil, err
	}
	airport := &domain.Airport{Name: input.Name, ClosestBigCity: input.ClosestBigCity}
	if err := s.airports.Create(ctx, airport); err != nil {
		return nil, err
	}
	s.log.WithField("airport_id", airport.ID).Info("airport created")
	return airport, nil
}

func (s *CatalogService) UpdateAirport(ctx context.Context, id int64, input AirportInput) (*domain.Airport, error) {
	if err := validateAirport(input); err != nil {
		return nil, err
	}
	airport := &domain.Airport{ID: id, Name: input.Name, ClosestBigCity: input.ClosestBigCity}
	if err := s.airports.Update(ctx, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (s *CatalogService) DeleteAirport(ctx context.Context, id int64) error {
	return s.airports.Delete(ctx, id)
}

func validateAirport(input AirportInput) error {
	ve := domain.NewValidationError()
	if input.Name == "" {
		ve.Add("name", "name is required")
	}
	if input.ClosestBigCity == "" {
		ve.Add("closest_big_city", "closest_big_city is required")
	}
	return ve.ErrOrNil()
}

func (s *CatalogService) ListRoutes(ctx context.Context) ([]domain.Route, error) {
	return s.routes.List(ctx)
}

func (s *CatalogService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

func (s *CatalogService) CreateRoute(ctx context.Context, input RouteInput) (*domain.Route, error) {
	if err := s.validateRoute(ctx, input); err != nil {
		return nil, err
	}
	route := &domain.Route{SourceID: input.SourceID, DestinationID: input.DestinationID, Distance: input.Distance}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}
	s.log.WithField("route_id", route.ID).Info("route created")
	return s.routes.GetByID(ctx, route.ID)
}

func (s *CatalogService) UpdateRoute(ctx context.Context, id int64, input RouteInput) (*domain.Route, error) {
	if err := s.validateRoute(ctx, input); err != nil {
		return nil, err
	}
	route := &domain.Route{ID: id, SourceID: input.SourceID, DestinationID: input.DestinationID, Distance: input.Distance}
	if err := s.routes.Update(ctx, route); err != nil {
		return nil, err
	}
	return s.routes.GetByID(ctx, id)
}

func (s *CatalogService) DeleteRoute(ctx context.Context, id int64) error {
	return s.routes.Delete(ctx, id)
}

func (s *CatalogService) validateRoute(ctx context.Context, input RouteInput) error {
	ve := domain.NewValidationError()
	if input.Distance <= 0 {
		ve.Add("distance", "distance must be greater than 0")
	}
	if input.SourceID == input.DestinationID {
		ve.Add("destination", "destination must differ from source")
	}
	if !ve.Empty() {
		return ve
	}

	if _, err := s.airports.GetByID(ctx, input.SourceID); err != nil {
		return err
	}
	if _, err := s.airports.GetByID(ctx, input.DestinationID); err != nil {
		return err
	}
	return nil
}

func (s *CatalogService) ListCrew(ctx context.Context) ([]domain.Crew, error) {
	return s.crews.List(ctx)
}

func (s *CatalogService) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.crews.GetByID(ctx, id)
}

func (s *CatalogService) CreateCrew(ctx context.Context, input CrewInput) (*domain.Crew, error) {
	if err := validateCrew(input); err != nil {
		return nil, err
	}
	crew := &domain.Crew{FirstName: input.FirstName, LastName: input.LastName}
	if err := s.crews.Create(ctx, crew); err != nil {
		return nil, err
	}
	return crew, nil
}

func (s *CatalogService) UpdateCrew(ctx context.Context, id int64, input CrewInput) (*domain.Crew, error) {
	if err := validateCrew(input); err != nil {
		return nil, err
	}
	crew := &domain.Crew{ID: id, FirstName: input.FirstName, LastName: input.LastName}
	if err := s.crews.Update(ctx, crew); err != nil {
		return nil, err
	}
	return crew, nil
}

func (s *CatalogService) DeleteCrew(ctx context.Context, id int64) error {
	return s.crews.Delete(ctx, id)
}

func validateCrew(input CrewInput) error {
	ve := domain.NewValidationError()
	if input.FirstName == "" {
		ve.Add("first_name", "first_name is required")
	}
	if input.LastName == "" {
		ve.Add("last_name", "last_name is required")
	}
	return ve.ErrOrNil()
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.airplanes.ListTypes(ctx)
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error) {
	if name == "" {
		ve := domain.NewValidationError()
		ve.Add("name", "name is required")
		return nil, ve
	}
	t := &domain.AirplaneType{Name: name}
	if err := s.airplanes.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CatalogService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return s.airplanes.List(ctx)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, input AirplaneInput) (*domain.Airplane, error) {
	if err := s.validateAirplane(ctx, input); err != nil {
		return nil, err
	}
	airplane := &domain.Airplane{
		Name:           input.Name,
		Rows:           input.Rows,
		SeatsInRow:     input.SeatsInRow,
		AirplaneTypeID: input.AirplaneTypeID,
	}
	if err := s.airplanes.Create(ctx, airplane); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"airplane_id": airplane.ID, "capacity": airplane.Capacity()}).Info("airplane created")
	return s.airplanes.GetByID(ctx, airplane.ID)
}

func (s *CatalogService) UpdateAirplane(ctx context.Context, id int64, input AirplaneInput) (*domain.Airplane, error) {
	if err := s.validateAirplane(ctx, input); err != nil {
		return nil, err
	}
	airplane := &domain.Airplane{
		ID:             id,
		Name:           input.Name,
		Rows:           input.Rows,
		SeatsInRow:     input.SeatsInRow,
		AirplaneTypeID: input.AirplaneTypeID,
	}
	if err := s.airplanes.Update(ctx, airplane); err != nil {
		return nil, err
	}
	return s.airplanes.GetByID(ctx, id)
}

func (s *CatalogService) DeleteAirplane(ctx context.Context, id int64) error {
	return s.airplanes.Delete(ctx, id)
}

func (s *CatalogService) validateAirplane(ctx context.Context, input AirplaneInput) error {
	ve := domain.NewValidationError()
	if input.Name == "" {
		ve.Add("name", "name is required")
	}
	if input.Rows <= 0 {
		ve.Add("rows", "rows must be greater than 0")
	}
	if input.SeatsInRow <= 0 {
		ve.Add("seats_in_row", "seats_in_row must be greater than 0")
	}
	if !ve.Empty() {
		return ve
	}

	if _, err := s.airplanes.GetTypeByID(ctx, input.AirplaneTypeID); err != nil {
		return err
	}
	return nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
