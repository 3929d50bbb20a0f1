package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/airport/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
	Update(ctx context.Context, flight *domain.Flight, crewIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightSelect = `
	SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time,
	       r.distance,
	       src.id, src.name, src.closest_big_city,
	       dst.id, dst.name, dst.closest_big_city,
	       a.name, a.rows, a.seats_in_row, a.airplane_type_id, tp.name,
	       (SELECT count(*) FROM tickets t WHERE t.flight_id = f.id)
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id
	JOIN airplane_types tp ON tp.id = a.airplane_type_id`

func scanFlight(row interface{ Scan(...any) error }) (*domain.Flight, error) {
	var f domain.Flight
	var rt domain.Route
	var src, dst domain.Airport
	var a domain.Airplane
	var typeName string
	if err := row.Scan(&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&rt.Distance,
		&src.ID, &src.Name, &src.ClosestBigCity,
		&dst.ID, &dst.Name, &dst.ClosestBigCity,
		&a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &typeName,
		&f.TicketsSold); err != nil {
		return nil, err
	}
	rt.ID = f.RouteID
	rt.SourceID = src.ID
	rt.DestinationID = dst.ID
	rt.Source = &src
	rt.Destination = &dst
	a.ID = f.AirplaneID
	a.AirplaneType = &domain.AirplaneType{ID: a.AirplaneTypeID, Name: typeName}
	f.Route = &rt
	f.Airplane = &a
	return &f, nil
}

// List applies the filter as a conjunction. Date parameters compare against
// the UTC calendar date of the stored timestamp.
func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, flightSelect+`
	WHERE ($1::bigint IS NULL OR f.route_id = $1)
	  AND ($2::date IS NULL OR (f.departure_time AT TIME ZONE 'UTC')::date = $2)
	  AND ($3::date IS NULL OR (f.arrival_time AT TIME ZONE 'UTC')::date = $3)
	ORDER BY f.id`, filter.RouteID, filter.DepartureDate, filter.ArrivalDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachCrew(ctx, flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, flightSelect+` WHERE f.id=$1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}

	flights := []domain.Flight{*f}
	if err := r.attachCrew(ctx, flights); err != nil {
		return nil, err
	}
	f = &flights[0]

	seatRows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id=$1 ORDER BY "row", seat`, id)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()
	for seatRows.Next() {
		var p domain.SeatPlace
		if err := seatRows.Scan(&p.Row, &p.Seat); err != nil {
			return nil, err
		}
		f.TakenSeats = append(f.TakenSeats, p)
	}
	return f, seatRows.Err()
}

// attachCrew loads crew members for a batch of flights in one query.
func (r *PGFlightRepository) attachCrew(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(flights))
	index := make(map[int64]*domain.Flight, len(flights))
	for i := range flights {
		ids = append(ids, flights[i].ID)
		index[flights[i].ID] = &flights[i]
	}

	rows, err := r.db.Query(ctx, `
		SELECT fc.flight_id, c.id, c.first_name, c.last_name
		FROM flight_crews fc
		JOIN crews c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1)
		ORDER BY c.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var flightID int64
		var c domain.Crew
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName); err != nil {
			return err
		}
		if f, ok := index[flightID]; ok {
			f.Crew = append(f.Crew, c)
		}
	}
	return rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES ($1, $2, $3, $4) RETURNING id`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := insertFlightCrew(ctx, tx, flight.ID, crewIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight, crewIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4 WHERE id=$5`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id=$1`, flight.ID); err != nil {
		return err
	}
	if err := insertFlightCrew(ctx, tx, flight.ID, crewIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertFlightCrew(ctx context.Context, tx pgx.Tx, flightID int64, crewIDs []int64) error {
	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`, flightID, crewID); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
