package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/airport/internal/domain"
)

type OrderRepository interface {
	// Create persists the order and all its tickets in one transaction.
	// Any invalid or conflicting ticket aborts the whole order.
	Create(ctx context.Context, order *domain.Order) error
	// AddTicket appends one ticket to an existing order, re-running the
	// same seat validation the checkout path runs.
	AddTicket(ctx context.Context, ticket *domain.Ticket) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	GetTicketByID(ctx context.Context, id int64) (*domain.Ticket, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// created_at comes from the database; whatever the caller had in the
	// struct is overwritten.
	if err := tx.QueryRow(ctx, `INSERT INTO orders (reference, user_id) VALUES ($1, $2) RETURNING id, created_at`,
		order.Reference, order.UserID).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		if err := insertTicket(ctx, tx, t); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGOrderRepository) AddTicket(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertTicket(ctx, tx, ticket); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// insertTicket is the single write path for tickets. It re-validates the
// seat against the flight's airplane inside the transaction and maps the
// (flight_id, row, seat) unique index violation to ErrSeatTaken, so range
// errors and booking conflicts stay distinct.
func insertTicket(ctx context.Context, tx pgx.Tx, t *domain.Ticket) error {
	var airplane domain.Airplane
	err := tx.QueryRow(ctx, `SELECT a.rows, a.seats_in_row FROM flights f JOIN airplanes a ON a.id = f.airplane_id WHERE f.id=$1`,
		t.FlightID).Scan(&airplane.Rows, &airplane.SeatsInRow)
	if err != nil {
		return fmt.Errorf("flight %d: %w", t.FlightID, mapNotFound(err))
	}

	if err := domain.ValidateSeat(t.Row, t.Seat, airplane); err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		t.Row, t.Seat, t.FlightID, t.OrderID).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("flight %d row %d seat %d: %w", t.FlightID, t.Row, t.Seat, domain.ErrSeatTaken)
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, reference, user_id, created_at FROM orders WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `SELECT id, reference, user_id, created_at FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.Reference, &o.UserID, &o.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}

	orders := []domain.Order{o}
	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

const ticketSelect = `
	SELECT t.id, t."row", t.seat, t.flight_id, t.order_id,
	       f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	       src.name, dst.name, a.name
	FROM tickets t
	JOIN flights f ON f.id = t.flight_id
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id`

func scanTicket(row interface{ Scan(...any) error }) (*domain.Ticket, error) {
	var t domain.Ticket
	var f domain.Flight
	var src, dst domain.Airport
	var a domain.Airplane
	if err := row.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID,
		&f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&src.Name, &dst.Name, &a.Name); err != nil {
		return nil, err
	}
	f.ID = t.FlightID
	f.Route = &domain.Route{ID: f.RouteID, Source: &src, Destination: &dst}
	a.ID = f.AirplaneID
	f.Airplane = &a
	t.Flight = &f
	return &t, nil
}

func (r *PGOrderRepository) attachTickets(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]*domain.Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
	}

	rows, err := r.db.Query(ctx, ticketSelect+` WHERE t.order_id = ANY($1) ORDER BY t.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return err
		}
		if o, ok := index[t.OrderID]; ok {
			o.Tickets = append(o.Tickets, *t)
		}
	}
	return rows.Err()
}

func (r *PGOrderRepository) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, ticketSelect+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

func (r *PGOrderRepository) GetTicketByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, ticketSelect+` WHERE t.id=$1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)
