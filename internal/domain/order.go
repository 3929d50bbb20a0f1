package domain

import "time"

// Order groups the tickets a user bought in one checkout. CreatedAt is
// stamped by the database on insert; clients cannot supply it.
type Order struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Tickets []Ticket `json:"tickets,omitempty"`
}

type Ticket struct {
	ID       int64 `json:"id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
	FlightID int64 `json:"flight_id"`
	OrderID  int64 `json:"order_id"`

	Flight *Flight `json:"flight,omitempty"`
}
