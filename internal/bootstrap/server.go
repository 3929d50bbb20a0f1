package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/ratelimit"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/Domenick1991/airport/internal/service/flights"
	"github.com/Domenick1991/airport/internal/service/orders"
	"github.com/Domenick1991/airport/internal/service/users"
)

type Services struct {
	Catalog catalog.CatalogUseCase
	Flights flights.FlightUseCase
	Orders  orders.OrderUseCase
	Users   users.UserUseCase
	Tokens  *auth.TokenManager
	Log     *logrus.Logger
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	if svc.Log == nil {
		svc.Log = logrus.StandardLogger()
	}

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, svc),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		svc.Log.WithField("address", cfg.HTTP.Address).Info("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newRouter(cfg *config.Config, svc Services) http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	limiter := ratelimit.NewClientLimiter(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst)
	router.Use(api.RateLimit(limiter))

	v1 := router.Group("/api/v1")

	// Registration and login are the only routes outside the auth gate.
	api.NewUserHandler(svc.Users).Register(v1.Group("/users"))

	authed := v1.Group("", api.Auth(svc.Tokens))
	staff := api.RequireStaff()

	api.NewAirportHandler(svc.Catalog).Register(authed.Group("/airports"), staff)
	api.NewRouteHandler(svc.Catalog).Register(authed.Group("/routes"), staff)
	api.NewCrewHandler(svc.Catalog).Register(authed.Group("/crew"), staff)
	api.NewAirplaneTypeHandler(svc.Catalog).Register(authed.Group("/airplane-types"), staff)
	api.NewAirplaneHandler(svc.Catalog).Register(authed.Group("/airplanes"), staff)
	api.NewFlightHandler(svc.Flights).Register(authed.Group("/flights"), staff)
	api.NewOrderHandler(svc.Orders).Register(authed.Group("/orders"))
	api.NewTicketHandler(svc.Orders).Register(authed.Group("/tickets"))

	if cfg.HTTP.SwaggerDir != "" {
		fs := http.FileServer(http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/swagger/*filepath", gin.WrapH(http.StripPrefix("/swagger/", fs)))
		router.GET("/docs/airport", func(c *gin.Context) {
			renderSwaggerUI(c.Writer, "/swagger/airport.swagger.json")
		})
	}

	return router
}

func renderSwaggerUI(w http.ResponseWriter, jsonURL string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
    <html>
    <head>
        <title>API Docs</title>
        <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
    </head>
    <body>
        <div id="swagger-ui"></div>
        <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
        <script>
            window.onload = function() {
                window.ui = SwaggerUIBundle({
                    url: "%s",
                    dom_id: '#swagger-ui'
                });
            };
        </script>
    </body>
    </html>`, jsonURL)

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}
