package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/cache"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/Domenick1991/airport/internal/service/users"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	var flightCache flights.Cache
	if cfg.Cache.FlightsTTLSeconds > 0 {
		flightCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second)
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	airportRepo := repository.NewAirportRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	crewRepo := repository.NewCrewRepository(pool)
	airplaneRepo := repository.NewAirplaneRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)

	svc := bootstrap.Services{
		Catalog: catalog.NewCatalogService(airportRepo, routeRepo, crewRepo, airplaneRepo, log),
		Flights: flights.NewFlightService(flightRepo, flightCache, log),
		Orders: orders.NewOrderService(
			orderRepo,
			flightRepo,
			userRepo,
			producer,
			cfg.Kafka.OrderEventsTopic,
			log,
			orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		),
		Users:  users.NewUserService(userRepo, tokens, cfg.Auth.BcryptCost, log),
		Tokens: tokens,
		Log:    log,
	}

	if err := bootstrap.Run(ctx, cfg, svc); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
