package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tourbase/tourbase/internal/access"
	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	diagnosticsdomain "github.com/tourbase/tourbase/internal/diagnostics/domain"
	"github.com/tourbase/tourbase/internal/session"
	subscriptiondomain "github.com/tourbase/tourbase/internal/subscription/domain"
	subscriptionservice "github.com/tourbase/tourbase/internal/subscription/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewHTTPMetrics),
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log.Named("http")))
	r.Use(MetricsMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger, httpMetrics *HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	sessions       *session.Service
	guard          *access.Guard
	accessor       *subscriptionservice.Accessor
	billing        subscriptiondomain.Client
	diagnosticsSvc diagnosticsdomain.Service
	clock          clock.Clock
	log            *zap.Logger
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	Sessions       *session.Service
	Guard          *access.Guard
	Accessor       *subscriptionservice.Accessor
	Billing        subscriptiondomain.Client
	DiagnosticsSvc diagnosticsdomain.Service
	Clock          clock.Clock
	Log            *zap.Logger
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		sessions:       p.Sessions,
		guard:          p.Guard,
		accessor:       p.Accessor,
		billing:        p.Billing,
		diagnosticsSvc: p.DiagnosticsSvc,
		clock:          p.Clock,
		log:            p.Log.Named("server"),
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/v1")

	// -------- Session --------
	api.POST("/session", OwnerRequired(), s.PutSession)
	api.GET("/session", OwnerRequired(), s.GetSession)
	api.DELETE("/session", OwnerRequired(), s.ClearSession)

	// -------- Entitlements --------
	api.GET("/entitlements", OwnerRequired(), s.GetEntitlements)

	// -------- Access gate --------
	api.GET("/access/:capability", OwnerRequired(), s.CheckAccess)

	// -------- Subscription --------
	api.GET("/subscription", OwnerRequired(), s.GetSubscription)
	api.POST("/subscription/cancel", OwnerRequired(), s.CancelSubscription)

	// -------- Diagnostics --------
	api.POST("/diagnostics", OwnerRequired(), s.SubmitDiagnostics)
	api.GET("/diagnostics", OwnerRequired(), s.ListDiagnostics)
	api.GET("/diagnostics/blocks", s.ListDiagnosticBlocks)
	api.GET("/diagnostics/:id", OwnerRequired(), s.GetDiagnosticsByID)
	api.DELETE("/diagnostics/:id", OwnerRequired(), s.DeleteDiagnosticsByID)
}
