package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/airport/internal/domain"
)

type RouteRepository interface {
	List(ctx context.Context) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

const routeSelect = `
	SELECT r.id, r.source_id, r.destination_id, r.distance,
	       src.id, src.name, src.closest_big_city,
	       dst.id, dst.name, dst.closest_big_city
	FROM routes r
	JOIN airports src ON src.id = r.source_id
	JOIN airports dst ON dst.id = r.destination_id`

func scanRoute(row interface{ Scan(...any) error }) (*domain.Route, error) {
	var rt domain.Route
	var src, dst domain.Airport
	if err := row.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance,
		&src.ID, &src.Name, &src.ClosestBigCity,
		&dst.ID, &dst.Name, &dst.ClosestBigCity); err != nil {
		return nil, err
	}
	rt.Source = &src
	rt.Destination = &dst
	return &rt, nil
}

func (r *PGRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, routeSelect+` ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *rt)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	rt, err := scanRoute(r.db.QueryRow(ctx, routeSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return rt, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	res, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
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

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ RouteRepository = (*PGRouteRepository)(nil)
