package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/airport/internal/domain"
)

type AirplaneRepository interface {
	ListTypes(ctx context.Context) ([]domain.AirplaneType, error)
	GetTypeByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateType(ctx context.Context, t *domain.AirplaneType) error

	List(ctx context.Context) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func (r *PGAirplaneRepository) ListTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGAirplaneRepository) GetTypeByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *PGAirplaneRepository) CreateType(ctx context.Context, t *domain.AirplaneType) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
}

const airplaneSelect = `
	SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, t.name
	FROM airplanes a
	JOIN airplane_types t ON t.id = a.airplane_type_id`

func scanAirplane(row interface{ Scan(...any) error }) (*domain.Airplane, error) {
	var a domain.Airplane
	var typeName string
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &typeName); err != nil {
		return nil, err
	}
	a.AirplaneType = &domain.AirplaneType{ID: a.AirplaneTypeID, Name: typeName}
	return &a, nil
}

func (r *PGAirplaneRepository) List(ctx context.Context) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, airplaneSelect+` ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		a, err := scanAirplane(rows)
		if err != nil {
			return nil, err
		}
		airplanes = append(airplanes, *a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	a, err := scanAirplane(r.db.QueryRow(ctx, airplaneSelect+` WHERE a.id=$1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID).Scan(&airplane.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PGAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	res, err := r.db.Exec(ctx, `UPDATE airplanes SET name=$1, rows=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM airplanes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
