package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/census_dashboard/internal/config"
	"github.com/locvowork/census_dashboard/internal/dashboard"
	"github.com/locvowork/census_dashboard/internal/handler"
	"github.com/locvowork/census_dashboard/internal/logger"
	"github.com/locvowork/census_dashboard/internal/service"
	"github.com/locvowork/census_dashboard/pkg/source"
)

type App struct {
	Echo    *echo.Echo
	Service service.DashboardService
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e}
}

// Initialize loads configuration and logging, then builds the dashboard
// service. It does not render anything.
func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	svc, err := NewService(config.DefaultEnvConfig.DASHBOARD_CONFIG_PATH, config.DefaultEnvConfig.CENSUS_SOURCE_URL, config.DefaultEnvConfig.FETCH_TIMEOUT)
	if err != nil {
		return err
	}
	a.Service = svc

	a.RegisterMiddlewares()
	a.RegisterRoutes(handler.NewDashboardHandler(svc))
	return nil
}

// NewService builds the dashboard service from a registry file, which may be
// empty, and the census source override.
func NewService(configPath, censusSourceURL string, fetchTimeout time.Duration) (service.DashboardService, error) {
	registry := dashboard.NewRegistry(censusSourceURL)
	if configPath != "" {
		var err error
		registry, err = dashboard.NewRegistryFromYamlFile(configPath, censusSourceURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load dashboards: %w", err)
		}
	}
	fetcher := source.NewFetcher(source.WithTimeout(fetchTimeout))
	return service.NewDashboardService(registry, fetcher), nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(requestContext)
}

// requestContext copies the request id set by middleware.RequestID into the
// request context for the logger helpers.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		if id != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		}
		return next(c)
	}
}

func (a *App) RegisterRoutes(h *handler.DashboardHandler) {
	a.Echo.GET("/", h.RedirectHandler)

	dashGroup := a.Echo.Group("/dashboards/:name")
	dashGroup.GET("", h.PageHandler)
	dashGroup.GET("/table", h.TableHandler)
	dashGroup.POST("/sort/:column", h.SortHandler)
	dashGroup.POST("/refresh", h.RefreshHandler)
	dashGroup.GET("/export/xlsx", h.ExportXLSXHandler)
	dashGroup.GET("/export/csv", h.ExportCSVHandler)

	apiGroup := a.Echo.Group("/api/v1")
	apiGroup.GET("/dashboards/:name", h.TableJSONHandler)
}

// Run renders the census dashboard, starts the background refresher and
// serves until ctx is cancelled. A failed initial render is logged and the
// server still starts; the page retries on first request.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.Service.Refresh(ctx, dashboard.CensusName); err != nil {
		logger.ErrorLog(ctx, "initial census render failed: %v", err)
	}
	a.Service.StartRefresher(ctx, config.DefaultEnvConfig.REFRESH_INTERVAL)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.InfoLog(ctx, "shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	}
}
