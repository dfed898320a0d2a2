package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nguyentranbao-ct/support-desk/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/support-desk/internal/server/middleware"
	"go.uber.org/fx"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	users UserController,
	tickets TicketController,
) error {
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(logger.MustNamed("http_error"))

	corsPattern, err := regexp.Compile(conf.Server.CORSOriginRegex)
	if err != nil {
		return err
	}

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.CORS(corsPattern))
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", health)

	api := e.Group("/api", pkgmdw.AgentIdentity(conf.Server.DefaultAgentID))
	api.GET("/user", users.GetUser)
	api.PATCH("/user", users.UpdateUser)
	api.PATCH("/user/password", users.UpdatePassword)
	api.GET("/user/activities", users.GetActivities)

	api.GET("/tickets", tickets.ListTickets)
	api.POST("/tickets", tickets.CreateTicket)
	api.GET("/tickets/:id", tickets.GetTicket)
	api.PATCH("/tickets/:id", tickets.UpdateTicket)
	api.GET("/tickets/:id/messages", tickets.ListMessages)
	api.POST("/tickets/:id/messages", tickets.PostMessage)
	api.POST("/tickets/:id/suggestions", tickets.Suggestions)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr())
				if err := e.Start(conf.Server.Addr()); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
	return nil
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "support-desk",
	})
}
