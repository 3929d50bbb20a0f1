package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

// flightListResponse flattens every reference to a label: route as
// "source - destination", airplane by name, crew by full names.
type flightListResponse struct {
	ID               int64     `json:"id"`
	Route            string    `json:"route"`
	Airplane         string    `json:"airplane"`
	AirplaneCapacity int       `json:"airplane_capacity"`
	Crew             []string  `json:"crew"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	TicketsAvailable int       `json:"tickets_available"`
}

// flightDetailResponse expands every reference in full.
type flightDetailResponse struct {
	ID            int64                  `json:"id"`
	Route         routeDetailResponse    `json:"route"`
	Airplane      airplaneDetailResponse `json:"airplane"`
	Crew          []crewResponse         `json:"crew"`
	DepartureTime time.Time              `json:"departure_time"`
	ArrivalTime   time.Time              `json:"arrival_time"`
	TakenSeats    []domain.SeatPlace     `json:"taken_seats"`
}

func toFlightListResponse(f domain.Flight) flightListResponse {
	out := flightListResponse{
		ID:               f.ID,
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             make([]string, 0, len(f.Crew)),
		TicketsAvailable: f.TicketsAvailable(),
	}
	if f.Route != nil {
		out.Route = f.Route.Label()
	}
	if f.Airplane != nil {
		out.Airplane = f.Airplane.Name
		out.AirplaneCapacity = f.Airplane.Capacity()
	}
	for _, m := range f.Crew {
		out.Crew = append(out.Crew, m.FullName())
	}
	return out
}

func toFlightDetailResponse(f domain.Flight) flightDetailResponse {
	out := flightDetailResponse{
		ID:            f.ID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Crew:          make([]crewResponse, 0, len(f.Crew)),
		TakenSeats:    f.TakenSeats,
	}
	if out.TakenSeats == nil {
		out.TakenSeats = []domain.SeatPlace{}
	}
	if f.Route != nil {
		out.Route = toRouteDetailResponse(*f.Route)
	}
	if f.Airplane != nil {
		out.Airplane = toAirplaneDetailResponse(*f.Airplane)
	}
	for _, m := range f.Crew {
		out.Crew = append(out.Crew, toCrewResponse(m))
	}
	return out
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, staff gin.HandlerFunc) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", staff, h.create)
	router.PUT("/:id", staff, h.update)
	router.DELETE("/:id", staff, h.delete)
}

// parseFlightFilter reads the optional route/departure_date/arrival_date
// query parameters. Malformed values are a 400, never an empty result.
func parseFlightFilter(c *gin.Context) (domain.FlightFilter, bool) {
	var filter domain.FlightFilter

	if raw := c.Query("route"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "route must be an integer id")
			return filter, false
		}
		filter.RouteID = &id
	}
	if raw := c.Query("departure_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, "departure_date must be a YYYY-MM-DD date")
			return filter, false
		}
		filter.DepartureDate = &d
	}
	if raw := c.Query("arrival_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			badRequest(c, "arrival_date must be a YYYY-MM-DD date")
			return filter, false
		}
		filter.ArrivalDate = &d
	}
	return filter, true
}

func (h *FlightHandler) list(c *gin.Context) {
	filter, ok := parseFlightFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]flightListResponse, 0, len(result))
	for _, f := range result {
		out = append(out, toFlightListResponse(f))
	}
	c.JSON(http.StatusOK, out)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightDetailResponse(*flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flights.FlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	flight, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightDetailResponse(*flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req flights.FlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightDetailResponse(*flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
