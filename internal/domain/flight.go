package domain

import "time"

type Flight struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route_id"`
	AirplaneID    int64     `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`

	Route       *Route      `json:"route,omitempty"`
	Airplane    *Airplane   `json:"airplane,omitempty"`
	Crew        []Crew      `json:"crew,omitempty"`
	TicketsSold int         `json:"tickets_sold"`
	TakenSeats  []SeatPlace `json:"taken_seats,omitempty"`
}

// SeatPlace is an occupied (row, seat) pair on a flight.
type SeatPlace struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

func (f Flight) TicketsAvailable() int {
	if f.Airplane == nil {
		return 0
	}
	return f.Airplane.Capacity() - f.TicketsSold
}

// FlightFilter narrows flight listings. Nil fields impose no constraint;
// present fields combine as a conjunction. Dates match the UTC calendar
// date of the stored timestamp.
type FlightFilter struct {
	RouteID       *int64
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}

func (f FlightFilter) Empty() bool {
	return f.RouteID == nil && f.DepartureDate == nil && f.ArrivalDate == nil
}
