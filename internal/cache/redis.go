package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/domain"
)

const flightsKeyPrefix = "cache:flights:"

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

// GetFlights returns the cached listing for a filter, or (nil, nil) on miss.
func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey(filter)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(filter), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops every cached flight listing. Called on any flight
// write so stale filters never survive a schedule change.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, flightsKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func flightsKey(filter domain.FlightFilter) string {
	route := "any"
	if filter.RouteID != nil {
		route = fmt.Sprintf("%d", *filter.RouteID)
	}
	dep, arr := "any", "any"
	if filter.DepartureDate != nil {
		dep = filter.DepartureDate.Format("2006-01-02")
	}
	if filter.ArrivalDate != nil {
		arr = filter.ArrivalDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%sroute=%s:dep=%s:arr=%s", flightsKeyPrefix, route, dep, arr)
}
